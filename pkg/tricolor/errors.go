package tricolor

import (
	"fmt"
)

func errUnknownColor(s string) error {
	return fmt.Errorf("unknown color %q: expected white, black, red or yellow", s)
}
