package scenario

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/fyfire/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	in := model.DefaultInputs()
	in.CurrentAge = 31
	in.ISABalance = 12500.5
	in.WithdrawalRate = 3.5
	in.ExpectedReturn = 7

	var buf bytes.Buffer
	if err := Export(&buf, in); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "isa_balance: 12500.5") {
		t.Fatalf("export missing snake_case key:\n%s", buf.String())
	}

	got, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got != in {
		t.Fatalf("Import() = %+v, want %+v", got, in)
	}
}

func TestImport_MergesDefaults(t *testing.T) {
	got, err := Import(strings.NewReader("version: 2\ninputs:\n  monthly_spending: 3000\n"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	want := model.DefaultInputs()
	want.MonthlySpending = 3000
	if got != want {
		t.Fatalf("Import() = %+v, want %+v", got, want)
	}
}

func TestImport_RejectsUnknownKey(t *testing.T) {
	_, err := Import(strings.NewReader("inputs:\n  monthly_spend: 3000\n"))
	if err == nil {
		t.Fatal("Import() error = nil, want unknown field error")
	}
}

func TestImport_Validates(t *testing.T) {
	_, err := Import(strings.NewReader("inputs:\n  current_age: 60\n  target_retirement_age: 55\n"))
	var verrs model.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Import() error = %v, want ValidationErrors", err)
	}
	if verrs[0].Field != "targetRetirementAge" {
		t.Fatalf("field = %q, want targetRetirementAge", verrs[0].Field)
	}
}

func TestImport_Empty(t *testing.T) {
	if _, err := Import(strings.NewReader("")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("Import(empty) error = %v, want ErrEmpty", err)
	}
}

func TestImport_NewerVersion(t *testing.T) {
	if _, err := Import(strings.NewReader("version: 99\n")); err == nil {
		t.Fatal("Import() error = nil, want version error")
	}
}
