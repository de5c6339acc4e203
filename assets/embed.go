package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt index.html
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToUpper(s))
	}
	return out, sc.Err()
}

// TargetWords returns the embedded default target list, uppercased, in file order.
func TargetWords() ([]string, error) {
	return readLines("words.txt")
}

// IndexHTML returns the embedded browser page.
func IndexHTML() ([]byte, error) {
	return FS.ReadFile("index.html")
}
