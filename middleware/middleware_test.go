package middleware

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/krishisetu/krishisetu/advisor"
	kerrors "github.com/krishisetu/krishisetu/errors"
	"github.com/krishisetu/krishisetu/querylog"
)

type namedMiddleware struct {
	name  string
	trace *[]string
}

func (m *namedMiddleware) Name() string { return m.name }
func (m *namedMiddleware) Execute(ctx *Context, next Handler) error {
	*m.trace = append(*m.trace, m.name+":before")
	err := next(ctx)
	*m.trace = append(*m.trace, m.name+":after")
	return err
}

func TestChainExecutionOrder(t *testing.T) {
	var trace []string
	chain := NewChain(
		&namedMiddleware{name: "outer", trace: &trace},
		&namedMiddleware{name: "inner", trace: &trace},
	)

	err := chain.Execute(NewContext(context.Background(), "q", "simple"), func(ctx *Context) error {
		trace = append(trace, "handler")
		return nil
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"outer:before", "inner:before", "handler", "inner:after", "outer:after"}
	if strings.Join(trace, ",") != strings.Join(want, ",") {
		t.Errorf("trace = %v, want %v", trace, want)
	}
}

func TestValidatorRejectsEmptyQuery(t *testing.T) {
	v := NewValidator()
	err := v.Execute(NewContext(context.Background(), "   ", "simple"), func(*Context) error {
		t.Fatal("handler must not run for an empty query")
		return nil
	})
	if !errors.Is(err, kerrors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestValidatorRejectsOversizedQuery(t *testing.T) {
	v := NewValidator()
	huge := strings.Repeat("x", maxQueryLength+1)
	err := v.Execute(NewContext(context.Background(), huge, "simple"), func(*Context) error {
		return nil
	})
	if !errors.Is(err, kerrors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestValidatorAcceptsNormalQuery(t *testing.T) {
	v := NewValidator()
	called := false
	err := v.Execute(NewContext(context.Background(), "which crop should I plant", "simple"), func(*Context) error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Errorf("err = %v, called = %v", err, called)
	}
}

func TestRecorderAppendsRecord(t *testing.T) {
	store := querylog.NewInMemoryStore()
	rec := NewRecorder(store)

	mctx := NewContext(context.Background(), "weather in Pune", "simple")
	err := rec.Execute(mctx, func(ctx *Context) error {
		ctx.Result = &advisor.Result{Success: true, Confidence: 0.7, Source: "Weather Advisor"}
		return nil
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	records, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Source != "Weather Advisor" || !records[0].Success {
		t.Errorf("record = %+v", records[0])
	}
}
