package demo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/errdemo/internal/errors"
)

// Messages of the read-number loop.
const (
	PromptText     = "Введите число: "
	RetryText      = "Это не число! Попробуйте снова."
	acceptedFormat = "Вы ввели число: %d\n"
)

// ReadInt prompts on out and reads lines from in until one parses as an
// integer, which it echoes and returns. Each malformed line is answered with
// RetryText and a new prompt. maxAttempts > 0 bounds the number of prompts;
// exceeding it is an InvalidValue condition. Running out of input before a
// valid line returns an error wrapping io.ErrUnexpectedEOF. ctx is checked
// before every prompt.
//
// When in is a *bufio.Reader it is read directly, so a caller sharing the
// reader (the interactive explorer) keeps every line ReadInt did not consume.
func ReadInt(ctx context.Context, in io.Reader, out io.Writer, maxAttempts int) (int, error) {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if maxAttempts > 0 && attempt > maxAttempts {
			return 0, apperrors.Raise(apperrors.KindInvalidValue, "no integer entered after %d attempts", maxAttempts)
		}

		fmt.Fprint(out, PromptText)
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return 0, fmt.Errorf("reading input: %w", err)
		}

		n, err := ParseInt(strings.TrimSpace(line))
		if errors.Is(err, apperrors.ErrInvalidValue) {
			fmt.Fprintln(out, RetryText)
			continue
		}
		if err != nil {
			return 0, err
		}

		fmt.Fprintf(out, acceptedFormat, n)
		return n, nil
	}
}
