package fixed

// Buffer is one arena slot.
type Buffer struct {
	B []byte

	poolIndex int
}

func (b *Buffer) Bytes() []byte {
	return b.B
}

func (b *Buffer) Len() int {
	return len(b.B)
}
