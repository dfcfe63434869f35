// Package imaging implements the background remover.
//
// A run decodes an image into a non-premultiplied RGBA buffer, rewrites every
// near-white pixel to transparent white, crops the result to the bounding box
// of the pixels that are not fully transparent, and encodes it as PNG.
//
// Supported inputs are PNG, JPEG and GIF from the standard library plus BMP,
// TIFF and WebP from golang.org/x/image. EXIF metadata in the input is
// counted but never copied to the output.
package imaging
