// Package handlers provides HTTP request handlers for the gallery API.
//
// It includes handlers for:
//   - Album listing and album detail
//   - Per-photo detail with EXIF capture settings
//   - Original photo and thumbnail serving
//   - Health checks and build information
package handlers
