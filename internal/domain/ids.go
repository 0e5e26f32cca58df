package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NextID allocates the next sequential id for prefix given the ids already
// in use. Only ids shaped "<prefix>-<n>" count; anything else is skipped.
func NextID(prefix string, existing []string) string {
	head := prefix + "-"
	maxN := 0
	for _, id := range existing {
		id = strings.TrimSpace(id)
		if !strings.HasPrefix(id, head) {
			continue
		}
		suffix := id[strings.LastIndex(id, "-")+1:]
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 0 {
			continue
		}
		if n > maxN {
			maxN = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, maxN+1)
}
