package endian

// SwapInPlace reverses the byte order of every elemSize-byte element in data.
//
// It is used to convert a scalar buffer stored in a foreign byte order into
// host order before the buffer is reinterpreted as a typed slice. elemSize
// must be 1, 2, 4 or 8 and len(data) must be a multiple of elemSize; other
// inputs leave data untouched.
func SwapInPlace(data []byte, elemSize int) {
	if len(data)%elemSize != 0 {
		return
	}

	switch elemSize {
	case 1:
		// Single-byte elements have no byte order.
	case 2:
		for i := 0; i < len(data); i += 2 {
			data[i], data[i+1] = data[i+1], data[i]
		}
	case 4:
		for i := 0; i < len(data); i += 4 {
			data[i], data[i+3] = data[i+3], data[i]
			data[i+1], data[i+2] = data[i+2], data[i+1]
		}
	case 8:
		for i := 0; i < len(data); i += 8 {
			data[i], data[i+7] = data[i+7], data[i]
			data[i+1], data[i+6] = data[i+6], data[i+1]
			data[i+2], data[i+5] = data[i+5], data[i+2]
			data[i+3], data[i+4] = data[i+4], data[i+3]
		}
	}
}
