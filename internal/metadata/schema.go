package metadata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE []byte

var (
	schemaOnce  sync.Once
	schemaCtx   *cue.Context
	schemaValue cue.Value
	schemaErr   error
)

func loadSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		v := schemaCtx.CompileBytes(schemaCUE)
		if v.Err() != nil {
			schemaErr = fmt.Errorf("compiling metadata schema: %w", v.Err())
			return
		}
		schemaValue = v.LookupPath(cue.ParsePath("#Metadata"))
	})
	return schemaCtx, schemaValue, schemaErr
}

// schemaViolation is a structural problem found by validateSection.
type schemaViolation struct {
	field string
	err   error
}

// validateSection checks a decoded limgen section against the schema and
// returns the first violation with its dotted field path.
func validateSection(section map[string]any) (*schemaViolation, error) {
	ctx, schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(section)
	if err != nil {
		return &schemaViolation{field: Namespace, err: err}, nil
	}

	value := ctx.CompileBytes(data)
	if value.Err() != nil {
		return &schemaViolation{field: Namespace, err: value.Err()}, nil
	}

	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		field := Namespace
		if errs := cueerrors.Errors(err); len(errs) > 0 {
			if path := errs[0].Path(); len(path) > 0 {
				field = Namespace + "." + strings.Join(path, ".")
			}
		}
		return &schemaViolation{field: field, err: err}, nil
	}
	return nil, nil
}
