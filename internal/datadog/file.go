package datadog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/appclacks/slo-exporter/pkg/slo/aggregates"
)

// ReadFile reads SLOs exported from the Datadog API (list SLOs response format)
func ReadFile(path string) ([]aggregates.RawSLO, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fail to read SLO file: %w", err)
	}
	var list SLOList
	if err := json.Unmarshal(content, &list); err != nil {
		return nil, fmt.Errorf("fail to parse SLO file %s: %w", path, err)
	}
	return ToRawSLOs(list.Data), nil
}

// ReadIDs reads a file containing one SLO ID per line
func ReadIDs(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fail to read SLO IDs file: %w", err)
	}
	ids := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" || strings.HasPrefix(id, "#") {
			continue
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fail to read SLO IDs file: %w", err)
	}
	return ids, nil
}
