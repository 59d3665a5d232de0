package decoder

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var fixtures = []string{
	"testdata/empty",
	"testdata/single_register_mov",
	"testdata/mov_family",
}

func TestDecoding(t *testing.T) {
	for _, filename := range fixtures {
		t.Run(filepath.Base(filename), func(t *testing.T) {
			source, err := os.ReadFile(filename + ".bin")
			if err != nil {
				t.Fatalf("%s = %v", filename, err)
			}
			expected, err := os.ReadFile(filename + ".asm")
			if err != nil {
				t.Fatalf("%s = %v", filename, err)
			}

			asm, err := NewDecoder(source).Decode()
			if err != nil {
				t.Fatalf("%s = %v", filename, err)
			}

			if !bytes.Equal(asm, expected) {
				t.Errorf("%s: decoded listing mismatch\ngot:\n%s\nwant:\n%s", filename, asm, expected)
			}
		})
	}
}

// TestAssembled feeds the decoded listing back through nasm and compares the machine code.
func TestAssembled(t *testing.T) {
	if _, err := exec.LookPath("nasm"); err != nil {
		t.Skip("nasm is not installed")
	}

	for _, filename := range fixtures {
		source, err := os.ReadFile(filename + ".bin")
		if err != nil {
			t.Fatalf("%s = %v", filename, err)
		}

		asm, err := NewDecoder(source).Decode()
		if err != nil {
			t.Fatalf("%s = %v", filename, err)
		}

		verifyAssembled(t, asm, source, filename)
	}
}

func verifyAssembled(t *testing.T, asm []byte, source []byte, filename string) {
	t.Helper()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.asm")
	out := filepath.Join(dir, "out.bin")

	if err := os.WriteFile(in, asm, 0o644); err != nil {
		t.Fatalf("%s; failed to flush the decoded asm. err = %v", filename, err)
	}

	nasm := exec.Command("nasm", "-o", out, in)
	if output, err := nasm.CombinedOutput(); err != nil {
		t.Fatalf("nasm err: %s = %v\n%s", filename, err, output)
	}

	assembled, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("%s = %v", filename, err)
	}

	if len(assembled) != len(source) {
		t.Errorf("%s there is a length mismatch between the source and assembled output", filename)
	}

	for idx, b := range assembled {
		if idx >= len(source) || b != source[idx] {
			t.Errorf("%s: byte %d doesn't match, got %d", filename, idx, b)
			break
		}
	}
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		name   string
		input  []byte
		result string
	}{
		{"register to register", []byte{0x89, 0xd9}, "mov cx, bx"},
		{"immediate to register", []byte{0xb8, 0x01, 0x00}, "mov ax, 1"},
		{"8-bit displacement", []byte{0x8b, 0x41, 0x05}, "mov ax, [bx + di + 5]"},
		{"memory to accumulator", []byte{0xa1, 0x00, 0x01}, "mov ax, [256]"},
		{"immediate to direct address", []byte{0xc6, 0x06, 0x00, 0x00, 0x07}, "mov [0], byte 7"},
		{"byte immediate to register", []byte{0xb1, 0x0c}, "mov cl, 12"},
		{"negative word immediate stays unsigned", []byte{0xb9, 0xf4, 0xff}, "mov cx, 65524"},
		{"accumulator to memory", []byte{0xa3, 0x0f, 0x00}, "mov [15], ax"},
		{"byte accumulator form still names ax", []byte{0xa0, 0x10, 0x00}, "mov ax, [16]"},
		{"reg is destination", []byte{0x8a, 0x00}, "mov al, [bx + si]"},
		{"reg is source", []byte{0x89, 0x0b}, "mov [bp + di], cx"},
		{"word immediate to memory", []byte{0xc7, 0x85, 0x85, 0x03, 0x5b, 0x01}, "mov [di + 901], word 347"},
		{"immediate to register through r/m", []byte{0xc6, 0xc3, 0x09}, "mov bl, byte 9"},
		{"negative 16-bit displacement", []byte{0x8b, 0x86, 0xd4, 0xfe}, "mov ax, [bp - 300]"},
		{"zero 8-bit displacement", []byte{0x88, 0x6e, 0x00}, "mov [bp], ch"},
		{"most negative displacement", []byte{0x89, 0x87, 0x00, 0x80}, "mov [bx - 32768], ax"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := Disassemble(test.input)
			if err != nil {
				t.Fatalf("Disassemble(% x) = %v", test.input, err)
			}

			expected := Header + test.result + "\n"
			if result != expected {
				t.Errorf("'%s' != '%s' for % x", result, expected, test.input)
			}
		})
	}
}

func TestDisassembleEmpty(t *testing.T) {
	result, err := Disassemble(nil)
	if err != nil {
		t.Fatalf("Disassemble(nil) = %v", err)
	}
	if result != "bits 16\n\n" {
		t.Errorf("got %q", result)
	}
}

func TestDisassembleUnsupportedOpcode(t *testing.T) {
	result, err := Disassemble([]byte{0xff})

	var opcodeErr *UnsupportedOpcodeError
	if !errors.As(err, &opcodeErr) {
		t.Fatalf("expected UnsupportedOpcodeError, got %v", err)
	}
	if opcodeErr.Byte != 0xff || opcodeErr.Offset != 0 {
		t.Errorf("got %+v", opcodeErr)
	}
	if result != "" {
		t.Errorf("partial output leaked: %q", result)
	}
}

func TestDisassembleDiscardsPartialOutput(t *testing.T) {
	input := []byte{0x89, 0xd9, 0xb8, 0x01, 0x00, 0x0f}

	instructions, err := NewDecoder(input).Instructions()
	if err == nil {
		t.Fatal("expected an error")
	}
	if instructions != nil {
		t.Errorf("partial instructions leaked: %v", instructions)
	}

	var opcodeErr *UnsupportedOpcodeError
	if !errors.As(err, &opcodeErr) || opcodeErr.Offset != 5 {
		t.Errorf("expected unsupported opcode at offset 5, got %v", err)
	}
}

func TestDisassembleTruncated(t *testing.T) {
	valid := [][]byte{
		{0x89, 0xd9},
		{0xb8, 0x01, 0x00},
		{0xb1, 0x0c},
		{0x8b, 0x41, 0x05},
		{0x8b, 0x86, 0xd4, 0xfe},
		{0x8b, 0x1e, 0x82, 0x0d},
		{0xa1, 0x00, 0x01},
		{0xa3, 0x0f, 0x00},
		{0xc6, 0x06, 0x00, 0x00, 0x07},
		{0xc7, 0x85, 0x85, 0x03, 0x5b, 0x01},
		{0xc6, 0x03, 0x07},
	}

	for _, encoding := range valid {
		for n := 1; n < len(encoding); n++ {
			prefix := encoding[:n]
			_, err := Disassemble(prefix)
			if !errors.Is(err, ErrTruncatedInput) {
				t.Errorf("Disassemble(% x) = %v, want ErrTruncatedInput", prefix, err)
			}
		}
	}
}

func TestInstructionsConsumeExactEncoding(t *testing.T) {
	encodings := [][]byte{
		{0x89, 0xd9},
		{0xb8, 0x01, 0x00},
		{0xb1, 0x0c},
		{0x8b, 0x41, 0x05},
		{0x8b, 0x86, 0xd4, 0xfe},
		{0x8b, 0x1e, 0x82, 0x0d},
		{0x8a, 0x00},
		{0xa1, 0x00, 0x01},
		{0xa3, 0x0f, 0x00},
		{0xc6, 0x06, 0x00, 0x00, 0x07},
		{0xc7, 0x85, 0x85, 0x03, 0x5b, 0x01},
		{0xc6, 0x03, 0x07},
		{0xc7, 0x46, 0xfe, 0x10, 0x00},
	}

	var stream []byte
	for _, encoding := range encodings {
		stream = append(stream, encoding...)
	}

	instructions, err := NewDecoder(stream).Instructions()
	if err != nil {
		t.Fatalf("Instructions() = %v", err)
	}
	if len(instructions) != len(encodings) {
		t.Fatalf("decoded %d instructions, want %d", len(instructions), len(encodings))
	}

	offset := 0
	for i, instruction := range instructions {
		if instruction.Offset != offset {
			t.Errorf("instruction %d: offset %d, want %d", i, instruction.Offset, offset)
		}
		if !bytes.Equal(instruction.Bytes, encodings[i]) {
			t.Errorf("instruction %d: consumed % x, want % x", i, instruction.Bytes, encodings[i])
		}
		offset += len(encodings[i])
	}
	if offset != len(stream) {
		t.Errorf("consumed %d bytes of %d", offset, len(stream))
	}
}

func TestDecodeIsRepeatable(t *testing.T) {
	d := NewDecoder([]byte{0x89, 0xd9, 0xa1, 0x00, 0x01})

	first, err := d.Decode()
	if err != nil {
		t.Fatal(err)
	}
	second, err := d.Decode()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("%q != %q", first, second)
	}
	if lines := strings.Count(string(first), "\n"); lines != 4 {
		t.Errorf("expected header plus 2 lines, got %d line breaks", lines)
	}
}
