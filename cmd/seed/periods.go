package main

import (
	"fmt"
	"strings"

	"github.com/godilite/review-calibration/internal/service"
)

func parsePeriods(raw string) ([]string, error) {
	var periods []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if err := service.ValidatePeriod(p); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	if len(periods) == 0 {
		return nil, fmt.Errorf("no periods given")
	}
	return periods, nil
}
