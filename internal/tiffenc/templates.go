package tiffenc

// Fixed IFD byte-array templates, transcribed from the original's
// TiffHeader.h constant tables (spec.md §4.4 "Static TIFF templates"),
// one array per (codec, sample format, channel count). Values are
// patched by offset at encode time, never reconstructed field by field.
var (
	templateRawU8Gray = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 1, 0, 0, 0, 8, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 134, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 3, 0, 83, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0,
		0, 0,
	}
	templateRawF32Gray = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 1, 0, 0, 0, 32, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 134, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 3, 0, 83, 1,
		3, 0, 1, 0, 0, 0, 3, 0, 0, 0, 0, 0,
		0, 0,
	}
	templateRawU8RGB = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 3, 0, 0, 0, 134, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 146, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 3, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 3, 0, 83, 1,
		3, 0, 3, 0, 0, 0, 140, 0, 0, 0, 0, 0,
		0, 0, 8, 0, 8, 0, 8, 0, 1, 0, 1, 0,
		1, 0,
	}
	templateRawU8RGBA = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 11, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 4, 0, 0, 0, 146, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 162, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 4, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 4, 0, 82, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 83, 1,
		3, 0, 4, 0, 0, 0, 154, 0, 0, 0, 0, 0,
		0, 0, 8, 0, 8, 0, 8, 0, 8, 0, 1, 0,
		1, 0, 1, 0, 1, 0,
	}
	templateLZWF32Gray = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 1, 0, 0, 0, 32, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 5, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 134, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 3, 0, 83, 1,
		3, 0, 1, 0, 0, 0, 3, 0, 0, 0, 0, 0,
		0, 0,
	}
	templateLZWU8Gray = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 1, 0, 0, 0, 8, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 5, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 134, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 1, 0, 83, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0,
		0, 0,
	}
	templateLZWU8RGB = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 3, 0, 0, 0, 134, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 5, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 146, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 3, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 3, 0, 83, 1,
		3, 0, 3, 0, 0, 0, 140, 0, 0, 0, 0, 0,
		0, 0, 8, 0, 8, 0, 8, 0, 1, 0, 1, 0,
		1, 0,
	}
	templateLZWU8RGBA = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 11, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 4, 0, 0, 0, 146, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 5, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 162, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 4, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 4, 0, 82, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 83, 1,
		3, 0, 4, 0, 0, 0, 154, 0, 0, 0, 0, 0,
		0, 0, 8, 0, 8, 0, 8, 0, 8, 0, 1, 0,
		1, 0, 1, 0, 1, 0,
	}
	templateDeflateF32Gray = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 1, 0, 0, 0, 32, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 8, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 134, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 3, 0, 83, 1,
		3, 0, 1, 0, 0, 0, 3, 0, 0, 0, 0, 0,
		0, 0,
	}
	templateDeflateU8Gray = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 1, 0, 0, 0, 8, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 8, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 134, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 1, 0, 83, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0,
		0, 0,
	}
	templateDeflateU8RGB = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 3, 0, 0, 0, 134, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 8, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 146, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 3, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 3, 0, 83, 1,
		3, 0, 3, 0, 0, 0, 140, 0, 0, 0, 0, 0,
		0, 0, 8, 0, 8, 0, 8, 0, 1, 0, 1, 0,
		1, 0,
	}
	templateDeflateU8RGBA = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 11, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 4, 0, 0, 0, 146, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 8, 0, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 162, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 4, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 4, 0, 82, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 83, 1,
		3, 0, 4, 0, 0, 0, 154, 0, 0, 0, 0, 0,
		0, 0, 8, 0, 8, 0, 8, 0, 8, 0, 1, 0,
		1, 0, 1, 0, 1, 0,
	}
	templatePackBitsF32Gray = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 1, 0, 0, 0, 32, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 5, 128, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 134, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 3, 0, 83, 1,
		3, 0, 1, 0, 0, 0, 3, 0, 0, 0, 0, 0,
		0, 0,
	}
	templatePackBitsU8Gray = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 1, 0, 0, 0, 8, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 5, 128, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 134, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 1, 0, 83, 1,
		3, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0,
		0, 0,
	}
	templatePackBitsU8RGB = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 10, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 3, 0, 0, 0, 134, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 5, 128, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 146, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 3, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 3, 0, 83, 1,
		3, 0, 3, 0, 0, 0, 140, 0, 0, 0, 0, 0,
		0, 0, 8, 0, 8, 0, 8, 0, 1, 0, 1, 0,
		1, 0,
	}
	templatePackBitsU8RGBA = []byte{
		73, 73, 42, 0, 8, 0, 0, 0, 11, 0, 0, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 1,
		4, 0, 1, 0, 0, 0, 0, 1, 0, 0, 2, 1,
		3, 0, 4, 0, 0, 0, 146, 0, 0, 0, 3, 1,
		3, 0, 1, 0, 0, 0, 5, 128, 0, 0, 6, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 17, 1,
		4, 0, 1, 0, 0, 0, 162, 0, 0, 0, 21, 1,
		3, 0, 1, 0, 0, 0, 4, 0, 0, 0, 22, 1,
		4, 0, 1, 0, 0, 0, 255, 255, 255, 255, 23, 1,
		4, 0, 1, 0, 0, 0, 0, 0, 4, 0, 82, 1,
		3, 0, 1, 0, 0, 0, 2, 0, 0, 0, 83, 1,
		3, 0, 4, 0, 0, 0, 154, 0, 0, 0, 0, 0,
		0, 0, 8, 0, 8, 0, 8, 0, 8, 0, 1, 0,
		1, 0, 1, 0, 1, 0,
	}
	geoTIFFHeaderPart = []byte{
		14, 131, 12, 0, 3, 0, 0, 0, 0, 0, 0, 0,
		130, 132, 12, 0, 6, 0, 0, 0, 0, 0, 0, 0,
		175, 135, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		176, 135, 12, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		177, 135, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		129, 164, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)
