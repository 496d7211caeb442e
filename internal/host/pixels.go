package host

// Premultiply copies straight-alpha RGBA src into dst with premultiplied
// color, the layout GPU textures expect. dst must be at least len(src).
func Premultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		a := uint32(src[i+3])
		switch a {
		case 255:
			copy(dst[i:i+4], src[i:i+4])
		case 0:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
		default:
			dst[i] = uint8(uint32(src[i]) * a / 255)
			dst[i+1] = uint8(uint32(src[i+1]) * a / 255)
			dst[i+2] = uint8(uint32(src[i+2]) * a / 255)
			dst[i+3] = uint8(a)
		}
	}
}

// AlphaAt returns the mean alpha of the w x h device-pixel block at (x, y)
// of an RGBA buffer with the given stride in pixels.
func AlphaAt(pix []byte, stride, x, y, w, h int) uint8 {
	var sum, n int
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			i := (yy*stride+xx)*4 + 3
			if xx < 0 || yy < 0 || xx >= stride || i >= len(pix) {
				continue
			}
			sum += int(pix[i])
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return uint8(sum / n)
}
