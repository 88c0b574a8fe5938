package helpers

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

// allowed image extensions for remote (object store) uploads
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// IsAllowedImage reports whether the filename has one of the accepted image extensions.
func IsAllowedImage(filename string) bool {
	return imageExts[strings.ToLower(filepath.Ext(filename))]
}

// ContentTypeForImage maps an image filename to its MIME type.
func ContentTypeForImage(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

// UniqueFilename builds a collision-free name for a stored upload:
// fieldname + timestamp + random suffix + original extension.
func UniqueFilename(fieldname, originalName string) string {
	suffix := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
	ext := strings.ToLower(filepath.Ext(originalName))
	return fieldname + suffix + ext
}
