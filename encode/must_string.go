package encode

import (
	"bytes"
	"strings"

	"github.com/plankit/plankit/model"
)

func MustString(p *model.Problem) string {
	buf := bytes.NewBuffer(nil)
	if err := Problem(buf, p); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
