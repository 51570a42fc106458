package surface

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ErrEmptyImage is returned when an image source holds no drawable content.
var ErrEmptyImage = errors.New("image is empty")

// ImageLoader resolves an image source to the text art drawn for it.
type ImageLoader func(src string) (string, error)

// LoadArt reads a text-art file from disk.
func LoadArt(src string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	art := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n ")
	if strings.TrimSpace(art) == "" {
		return "", fmt.Errorf("%s: %w", src, ErrEmptyImage)
	}
	return art, nil
}

// LoadImage resolves n.Src. On failure the node is hidden and a diagnostic
// is logged; a later successful load shows it again.
func (s *Surface) LoadImage(n *Node) error {
	art, err := s.loader(n.Src)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		n.art = ""
		n.Style.DisplayNone = true
		s.logger.Error("Failed to load logo image",
			zap.String("src", n.Src),
			zap.Error(err),
		)
		return err
	}
	n.art = art
	n.Style.DisplayNone = false
	return nil
}
