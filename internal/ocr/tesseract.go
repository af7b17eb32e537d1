package ocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Engine extracts text from raw image bytes. Faked in tests.
type Engine interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Tesseract shells out to the tesseract binary. The image is staged in a
// temp file because tesseract reads from disk.
type Tesseract struct{}

func NewTesseract() *Tesseract {
	return &Tesseract{}
}

func (t *Tesseract) ExtractText(ctx context.Context, image []byte) (string, error) {
	tmpFile, err := os.CreateTemp("", "menu-*.img")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(image); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, "tesseract", tmpFile.Name(), "stdout")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract failed: %w", err)
	}

	return string(out), nil
}
