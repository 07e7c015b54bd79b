package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// ContentRenderer transforms informational text before it is printed, e.g.
// Markdown to ANSI.
type ContentRenderer func(string) (string, error)

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	// Profile colors verdicts. The zero value is termenv.TrueColor; use
	// termenv.Ascii for plain output.
	Profile termenv.Profile
	// Prompt is printed before every read when set.
	Prompt string

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithProfile sets the color profile of verdicts.
func WithProfile(p termenv.Profile) TextHandlerOption {
	return func(h *TextHandler) {
		h.Profile = p
	}
}

// WithPrompt prints prompt before every read.
func WithPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// NewTextHandler creates a handler for standard text IO. Output is plain
// unless WithProfile selects colors.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Profile: termenv.Ascii,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// initPump starts reading in the background so that Input can honor ctx
// while a read is blocked.
func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err == io.EOF {
				close(h.inputChan)
				return
			}
			h.inputChan <- inputResult{err: err}
			// Backoff for persistent read failures.
			time.Sleep(50 * time.Millisecond)
		}
	}
}

func (h *TextHandler) Output(ctx context.Context, resp Response) error {
	var err error
	switch resp.Kind {
	case KindMatch:
		m := resp.Match
		if m.Accepted {
			verdict := h.Profile.String("accepted").Foreground(h.Profile.Color("#22c55e"))
			_, err = fmt.Fprintf(h.Writer, "%s  %s\n", verdict, strings.Join(m.Path, " -> "))
		} else {
			verdict := h.Profile.String("rejected").Foreground(h.Profile.Color("#ef4444"))
			_, err = fmt.Fprintln(h.Writer, verdict)
		}
	case KindSamples:
		for _, s := range resp.Samples {
			if _, err = fmt.Fprintln(h.Writer, s); err != nil {
				break
			}
		}
	case KindError:
		_, err = fmt.Fprintf(h.Writer, "Error: %s\n", resp.Text)
	case KindInfo:
		text := resp.Text
		if h.Renderer != nil {
			if rendered, rerr := h.Renderer(text); rerr == nil {
				text = rendered
			}
		}
		_, err = fmt.Fprintln(h.Writer, strings.TrimSpace(text))
	default:
		_, err = fmt.Fprintln(h.Writer, strings.TrimRight(resp.Text, "\n"))
	}
	return err
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			if h.Prompt != "" {
				fmt.Fprint(h.Writer, h.Prompt)
			}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}

			clean, err := SanitizeInput(strings.TrimRight(res.text, "\r\n"))
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}
