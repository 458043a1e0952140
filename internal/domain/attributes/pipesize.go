package attributes

import (
	"regexp"
	"strconv"
)

var pipeSizeRe = regexp.MustCompile(`(\d+)\s*[-xхXХ*×]\s*(\d+)`)

// ExtractPipeSize finds a D x L pipe dimension pair. It rejects pairs
// that look like fitting sizes (second component below 100, i.e. an
// angle or a small fitting diameter rather than a pipe length).
func ExtractPipeSize(s string) *PipeSize {
	for _, m := range pipeSizeRe.FindAllStringSubmatch(s, -1) {
		d, errD := strconv.Atoi(m[1])
		l, errL := strconv.Atoi(m[2])
		if errD != nil || errL != nil {
			continue
		}
		if d < 16 || d > 400 {
			continue
		}
		if l < 100 || l > 6000 {
			continue
		}
		return &PipeSize{D: d, L: l}
	}
	return nil
}
