// Package prompt implements numbered-menu prompts over a text stream.
//
// Input is read token by token: tokens are separated by whitespace, and a
// token that is not a number discards the rest of its line.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-faster/errors"

	"github.com/xenking/lanchonete/internal/domain/catalog"
	"github.com/xenking/lanchonete/internal/domain/pricing"
)

// Back is returned by ChooseOrBack when the user picks the "go back" option.
const Back = 0

// Messages printed when a choice is rejected.
const (
	MsgInvalidInput  = "Entrada inválida. Por favor, insira um número: "
	MsgInvalidOption = "Opção inválida. Tente novamente: "
	BackLabel        = "Voltar"
)

// ErrInputClosed is returned when the input stream ends before a token is read.
var ErrInputClosed = errors.New("input closed")

// Prompter reads choices from in and writes menus to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ReadToken returns the next whitespace-delimited token.
func (p *Prompter) ReadToken() (string, error) {
	var sb strings.Builder
	for {
		r, _, err := p.in.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return "", errors.Wrap(err, "read token")
			}
			if sb.Len() == 0 {
				return "", ErrInputClosed
			}
			return sb.String(), nil
		}
		if unicode.IsSpace(r) {
			if sb.Len() == 0 {
				continue
			}
			// Leave the delimiter so discardLine stops at the right newline.
			_ = p.in.UnreadRune()
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

func (p *Prompter) discardLine() error {
	_, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "discard line")
	}
	return nil
}

// RenderOptions prints labels as a 1-based numbered list.
func (p *Prompter) RenderOptions(labels []string) {
	for i, label := range labels {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, label)
	}
}

// ReadBoundedChoice reads numbers until one falls within [1, maxChoice].
func (p *Prompter) ReadBoundedChoice(maxChoice int) (int, error) {
	for {
		tok, err := p.ReadToken()
		if err != nil {
			return 0, err
		}

		n, convErr := strconv.Atoi(tok)
		switch {
		case convErr != nil:
			if err := p.discardLine(); err != nil {
				return 0, err
			}
			fmt.Fprint(p.out, MsgInvalidInput)
		case n < 1 || n > maxChoice:
			fmt.Fprint(p.out, MsgInvalidOption)
		default:
			return n, nil
		}
	}
}

// Choose prints the optional header and the numbered options followed by
// prompt, and returns the 1-based selection.
func (p *Prompter) Choose(options []string, prompt, header string) (int, error) {
	if header != "" {
		fmt.Fprintln(p.out, header)
	}
	fmt.Fprintln(p.out)
	p.RenderOptions(options)
	fmt.Fprintf(p.out, "%s(1-%d): ", prompt, len(options))

	choice, err := p.ReadBoundedChoice(len(options))
	if err != nil {
		return 0, errors.Wrap(err, "read choice")
	}
	return choice, nil
}

// ChooseOrBack offers items plus a trailing "Voltar" option. It returns the
// 1-based index of the chosen item, or Back.
func (p *Prompter) ChooseOrBack(items []catalog.Item, prompt string) (int, error) {
	options := make([]string, 0, len(items)+1)
	for _, item := range items {
		options = append(options, ItemLabel(item))
	}
	options = append(options, BackLabel)

	choice, err := p.Choose(options, prompt, "")
	if err != nil {
		return 0, err
	}
	if choice == len(options) {
		return Back, nil
	}
	return choice, nil
}

// ItemLabel renders an item as a menu option, e.g. "Suco - R$7.00".
func ItemLabel(item catalog.Item) string {
	return item.Name + " - R$" + pricing.FormatPrice(item.Price)
}
