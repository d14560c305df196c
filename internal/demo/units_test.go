package demo

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/agbru/errdemo/internal/errors"
)

// testEnv returns an Env whose missing file lives in a fresh temp dir.
func testEnv(t *testing.T, input string) Env {
	t.Helper()
	return Env{
		Age:         -5,
		MissingFile: filepath.Join(t.TempDir(), "nonexistent_file.txt"),
		Input:       strings.NewReader(input),
	}
}

// runOne runs the unit with the given ID from the built-in tour and
// returns what it printed.
func runOne(t *testing.T, env Env, id string) (string, Result) {
	t.Helper()
	units, err := Select(Builtin(env), []string{id})
	if err != nil {
		t.Fatalf("Select(%q): %v", id, err)
	}
	var out bytes.Buffer
	res := NewRunner(&out).RunUnit(context.Background(), units[0])
	return out.String(), res
}

func TestBuiltinIDs(t *testing.T) {
	var ids []string
	for _, u := range Builtin(Env{}) {
		ids = append(ids, u.ID())
	}
	want := []string{
		"parse-int",
		"parse-or-divide",
		"catch-all",
		"separate-handlers",
		"cleanup",
		"no-failure",
		"invalid-value",
		"type-mismatch",
		"index-out-of-range",
		"key-not-found",
		"file-not-found",
		"negative-age",
		"read-number",
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("unit IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestBuiltinUnits(t *testing.T) {
	tests := []struct {
		id      string
		input   string
		want    string
		outcome Outcome
		kind    apperrors.Kind
	}{
		{
			id:      "parse-int",
			want:    "Получена ошибка InvalidValue: strconv.Atoi: parsing \"10bc\": invalid syntax\n",
			outcome: OutcomeHandled,
			kind:    apperrors.KindInvalidValue,
		},
		{
			id:      "parse-or-divide",
			want:    "Получена ошибка: division by zero\n",
			outcome: OutcomeHandled,
			kind:    apperrors.KindDivisionByZero,
		},
		{
			id:      "catch-all",
			want:    "Получена ошибка: division by zero\n",
			outcome: OutcomeHandled,
			kind:    apperrors.KindDivisionByZero,
		},
		{
			id:      "separate-handlers",
			want:    "Получена ошибка DivisionByZero: division by zero\n",
			outcome: OutcomeHandled,
			kind:    apperrors.KindDivisionByZero,
		},
		{
			id:      "cleanup",
			want:    "Получена ошибка DivisionByZero: division by zero\nЯ блок, который выполняется всегда\n",
			outcome: OutcomeHandled,
			kind:    apperrors.KindDivisionByZero,
		},
		{
			id:      "no-failure",
			want:    "Исключения не появились, код работает отлично\nЯ блок, который выполняется всегда\n",
			outcome: OutcomeOK,
			kind:    apperrors.KindNone,
		},
		{
			id:      "invalid-value",
			want:    "Неправильное значение!\n",
			outcome: OutcomeHandled,
			kind:    apperrors.KindInvalidValue,
		},
		{
			id:      "type-mismatch",
			want:    "Нельзя складывать строку и число!\n",
			outcome: OutcomeHandled,
			kind:    apperrors.KindTypeMismatch,
		},
		{
			id:      "index-out-of-range",
			want:    "Выход за границы списка!\n",
			outcome: OutcomeHandled,
			kind:    apperrors.KindIndexOutOfRange,
		},
		{
			id:      "key-not-found",
			want:    "Такого ключа нет в словаре!\n",
			outcome: OutcomeHandled,
			kind:    apperrors.KindKeyNotFound,
		},
		{
			id:      "file-not-found",
			want:    "Файл не найден!\n",
			outcome: OutcomeHandled,
			kind:    apperrors.KindFileNotFound,
		},
		{
			id:      "negative-age",
			want:    "",
			outcome: OutcomeUnhandled,
			kind:    apperrors.KindInvalidValue,
		},
		{
			id:    "read-number",
			input: "abc\nxyz\n42\n",
			want: "Введите число: Это не число! Попробуйте снова.\n" +
				"Введите число: Это не число! Попробуйте снова.\n" +
				"Введите число: Вы ввели число: 42\n",
			outcome: OutcomeOK,
			kind:    apperrors.KindNone,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.id, func(t *testing.T) {
			out, res := runOne(t, testEnv(t, tt.input), tt.id)
			if diff := cmp.Diff(tt.want, out); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
			if res.Outcome != tt.outcome {
				t.Errorf("outcome = %v, want %v (err: %v)", res.Outcome, tt.outcome, res.Err)
			}
			if res.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", res.Kind, tt.kind)
			}
		})
	}
}

func TestDivisionReportedBeforeParse(t *testing.T) {
	for _, id := range []string{"parse-or-divide", "catch-all", "separate-handlers", "cleanup"} {
		out, res := runOne(t, testEnv(t, ""), id)
		if strings.Contains(out, "parsing") || strings.Contains(out, "InvalidValue") {
			t.Errorf("%s reported the parse failure: %q", id, out)
		}
		if !errors.Is(res.Err, apperrors.ErrDivisionByZero) {
			t.Errorf("%s: expected division by zero, got %v", id, res.Err)
		}
	}
}

func TestNegativeAgeMessage(t *testing.T) {
	_, res := runOne(t, testEnv(t, ""), "negative-age")
	if res.Err == nil || res.Err.Error() != NegativeAgeMessage {
		t.Fatalf("expected %q, got %v", NegativeAgeMessage, res.Err)
	}

	env := testEnv(t, "")
	env.Age = 30
	out, res := runOne(t, env, "negative-age")
	if res.Outcome != OutcomeOK || out != "" {
		t.Errorf("non-negative age should pass silently, got outcome %v output %q", res.Outcome, out)
	}
}

func TestFileNotFoundWithExistingFile(t *testing.T) {
	env := testEnv(t, "")
	env.MissingFile = filepath.Join("testdata", "present.txt")
	out, res := runOne(t, env, "file-not-found")
	if res.Outcome != OutcomeOK || out != "" {
		t.Errorf("existing file should open silently, got outcome %v output %q", res.Outcome, out)
	}
}

func TestFullTour(t *testing.T) {
	env := testEnv(t, "abc\nxyz\n42\n")

	t.Run("halts at the unhandled failure", func(t *testing.T) {
		var out bytes.Buffer
		report, err := NewRunner(&out).Run(context.Background(), Builtin(env))

		var unhandled apperrors.UnhandledError
		if !errors.As(err, &unhandled) || unhandled.Unit != "negative-age" {
			t.Fatalf("expected UnhandledError for negative-age, got %v", err)
		}
		if unhandled.Cause.Error() != NegativeAgeMessage {
			t.Errorf("expected negative-age message, got %q", unhandled.Cause.Error())
		}
		if len(report) != 13 || report[12].Outcome != OutcomeSkipped {
			t.Errorf("read-number should be reported as skipped, got %+v", report[len(report)-1])
		}
		if strings.Contains(out.String(), PromptText) {
			t.Error("read-number must not run after the halt")
		}
	})

	t.Run("keep going reaches the prompt", func(t *testing.T) {
		var out bytes.Buffer
		report, err := NewRunner(&out, WithKeepGoing(true)).Run(context.Background(), Builtin(env))
		if apperrors.ExitCode(err) != apperrors.ExitErrorUnhandled {
			t.Errorf("expected unhandled exit code, got %v", err)
		}
		if report.Count(OutcomeHandled) != 10 || report.Count(OutcomeOK) != 2 || report.Count(OutcomeUnhandled) != 1 {
			t.Errorf("unexpected outcome counts: %+v", report)
		}
		if !strings.HasSuffix(out.String(), "Вы ввели число: 42\n") {
			t.Errorf("expected the tour to end with the echoed number, got:\n%s", out.String())
		}
	})
}

func TestSelect(t *testing.T) {
	units := Builtin(Env{})

	t.Run("empty selects all", func(t *testing.T) {
		got, err := Select(units, nil)
		if err != nil || len(got) != len(units) {
			t.Fatalf("Select(nil) = %d units, %v", len(got), err)
		}
	})

	t.Run("keeps declaration order and normalises names", func(t *testing.T) {
		got, err := Select(units, []string{"ReadNumber", "parse_int", " cleanup ", "parse-int"})
		if err != nil {
			t.Fatal(err)
		}
		var ids []string
		for _, u := range got {
			ids = append(ids, u.ID())
		}
		if diff := cmp.Diff([]string{"parse-int", "cleanup", "read-number"}, ids); diff != "" {
			t.Errorf("selection mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := Select(units, []string{"parse-hex"})
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigError, got %v", err)
		}
	})
}
