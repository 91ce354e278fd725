package label

import (
	"fmt"
	"strings"

	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/samber/lo"
)

// ParseCartonNumbers splits scanner input into carton numbers: one per line, trimmed,
// blanks dropped, input order kept. Any repeated number rejects the whole input.
func ParseCartonNumbers(input string) ([]string, error) {
	cartonNumbers := lo.FilterMap(strings.Split(input, "\n"), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})
	if len(cartonNumbers) == 0 {
		return nil, fmt.Errorf("no carton numbers scanned%w", model.ErrInvalidParameter)
	}

	if duplicates := lo.FindDuplicates(cartonNumbers); len(duplicates) > 0 {
		return nil, fmt.Errorf("%w (%s)", model.ErrDuplicateCarton, strings.Join(duplicates, ", "))
	}
	return cartonNumbers, nil
}
