// Package pixel implements the 1-bit color model and packed frame buffer used by the
// SSD1306 OLED controller.
//
// The types are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, so any [image] source can be drawn onto a [FrameBuffer].
package pixel
