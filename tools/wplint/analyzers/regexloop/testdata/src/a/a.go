package a

import "regexp"

func bad(lines []string) {
	for _, line := range lines {
		re := regexp.MustCompile(`^(\d+) (-?\d+) \|(.+)$`) // want "regexp.MustCompile compiles its pattern inside loop"
		_ = re.FindStringSubmatch(line)
	}
}

func badMatch(lines []string) int {
	n := 0
	for _, line := range lines {
		if ok, _ := regexp.MatchString(`\.jpe?g$`, line); ok { // want "regexp.MatchString compiles its pattern inside loop"
			n++
		}
	}
	return n
}

var candidateLine = regexp.MustCompile(`^(\d+) (-?\d+) \|(.+)$`)

func good(lines []string) {
	for _, line := range lines {
		_ = candidateLine.FindStringSubmatch(line)
	}
}

func goodMethod(lines []string) int {
	re := regexp.MustCompile(`\.jpe?g$`)
	n := 0
	for _, line := range lines {
		if re.MatchString(line) {
			n++
		}
	}
	return n
}
