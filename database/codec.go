package database

import (
	"encoding/json"
	"fmt"
	"strings"
)

// encodeImageURLs serializes the image list for the image_urls TEXT column.
// A nil list is stored as NULL; an empty list is stored as "[]".
func encodeImageURLs(urls []string) (*string, error) {
	if urls == nil {
		return nil, nil
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image_urls: %w", err)
	}
	s := string(data)
	return &s, nil
}

// decodeImageURLs reads the image_urls column back into a list.
// NULL, empty text and the JSON literal null all decode to an empty list.
func decodeImageURLs(raw *string) ([]string, error) {
	if raw == nil {
		return []string{}, nil
	}
	text := strings.TrimSpace(*raw)
	if text == "" || text == "null" {
		return []string{}, nil
	}

	var urls []string
	if err := json.Unmarshal([]byte(text), &urls); err != nil {
		return nil, fmt.Errorf("failed to decode image_urls: %w", err)
	}
	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}
