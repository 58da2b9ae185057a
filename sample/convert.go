package sample

// PCMI16ToF32 converts a signed 16-bit PCM sample to float32.
// The divisor is 32767, so 0x7FFF maps to exactly 1.0 and -0x8000 slightly
// below -1.0.
func PCMI16ToF32(s int16) float32 {
	return float32(s) * (1.0 / 32767.0)
}

// PCMU16ToF32 converts an unsigned 16-bit PCM sample to float32.
// 0 maps to -1.0 and 0xFFFF to exactly 1.0.
func PCMU16ToF32(s uint16) float32 {
	return float32(s)*(2.0/65535.0) - 1.0
}
