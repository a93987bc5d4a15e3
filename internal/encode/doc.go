// Package encode writes normalized frame sequences out as animated images.
//
// The APNG encoder assembles the container in-process; animated WebP is
// produced by shelling out to the img2webp tool from libwebp, since no Go
// library in use here muxes animated WebP. Both encoders write to a temp
// sibling first so the destination is replaced atomically.
package encode
