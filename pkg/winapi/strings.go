package winapi

import (
	"unicode/utf16"
	"unsafe"
)

func UTF16PtrFromString(s string) (*uint16, error) {
	encoded := utf16.Encode([]rune(s))
	buf := make([]uint16, len(encoded)+1)
	copy(buf, encoded)
	return &buf[0], nil
}

func BytePtrFromString(s string) (*byte, error) {
	bytes := append([]byte(s), 0)
	return &bytes[0], nil
}

// ReadUTF16String reads a null-terminated UTF-16 string from a memory pointer
// Used for APIs that return LPWSTR/LPCWSTR pointers like GetCommandLineW
func ReadUTF16String(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var chars []uint16
	offset := uintptr(0)

	for {
		char := *(*uint16)(unsafe.Pointer(ptr + offset))
		if char == 0 {
			break
		}
		chars = append(chars, char)
		offset += 2

		if len(chars) > 32768 {
			break
		}
	}
	return string(utf16.Decode(chars))
}

// ReadANSIString reads a null-terminated ANSI string from a memory pointer
// Used for APIs that return LPSTR/LPCSTR pointers
func ReadANSIString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}

	var bytes []byte
	offset := uintptr(0)

	for {
		b := *(*byte)(unsafe.Pointer(ptr + offset))
		if b == 0 {
			break
		}
		bytes = append(bytes, b)
		offset++

		if len(bytes) > 32768 {
			break
		}
	}

	return string(bytes)
}
