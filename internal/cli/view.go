package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"meme-bot/internal/domain/entity"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	emotionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

const barWidth = 20

// TerminalView печатает панели контроллера в терминал.
type TerminalView struct {
	out   io.Writer
	plain bool
}

// NewTerminalView создаёт представление; plain отключает стили.
func NewTerminalView(out io.Writer, plain bool) *TerminalView {
	return &TerminalView{out: out, plain: plain}
}

func (v *TerminalView) Render(state entity.ViewState) {
	switch state.Panel {
	case entity.PanelUpload:
		fmt.Fprintln(v.out, v.style(mutedStyle, "Ready for an image."))
	case entity.PanelCamera:
		fmt.Fprintln(v.out, v.style(titleStyle, "Camera is on.")+" Press Enter to capture, q to cancel.")
	case entity.PanelLoading:
		fmt.Fprintln(v.out, v.style(mutedStyle, "Analyzing..."))
	case entity.PanelResults:
		fmt.Fprint(v.out, v.results(state))
	case entity.PanelError:
		fmt.Fprintln(v.out, v.style(errorStyle, "Error: ")+state.Message)
	}
}

func (v *TerminalView) results(state entity.ViewState) string {
	res := state.Result
	var sb strings.Builder

	sb.WriteString(v.style(titleStyle, "Result") + "\n")
	fmt.Fprintf(&sb, "%s %s\n", v.style(labelStyle, "Emotion:    "), v.style(emotionStyle, res.Emotion))
	if res.EmotionDescription != "" {
		fmt.Fprintf(&sb, "%s %s\n", v.style(labelStyle, "            "), res.EmotionDescription)
	}
	fmt.Fprintf(&sb, "%s %s\n", v.style(labelStyle, "Confidence: "), entity.EmotionScore{Score: res.Confidence}.Percent())
	fmt.Fprintf(&sb, "%s %d\n", v.style(labelStyle, "Faces:      "), res.FaceCount)

	if len(state.Scores) > 0 {
		sb.WriteString(v.style(titleStyle, "Scores") + "\n")
		width := 0
		for _, s := range state.Scores {
			width = max(width, len(s.Emotion))
		}
		for _, s := range state.Scores {
			fmt.Fprintf(&sb, "  %-*s %s %s\n", width, s.Emotion, bar(s.Score), s.Percent())
		}
	}

	fmt.Fprintf(&sb, "%s %s\n", v.style(labelStyle, "Original:   "), res.OriginalImage)
	fmt.Fprintf(&sb, "%s %s\n", v.style(labelStyle, "Meme:       "), res.MemeImage)
	return sb.String()
}

func (v *TerminalView) style(s lipgloss.Style, text string) string {
	if v.plain {
		return text
	}
	return s.Render(text)
}

// bar рисует полосу длиной пропорционально проценту.
func bar(score float64) string {
	n := int(score/100*barWidth + 0.5)
	n = min(max(n, 0), barWidth)
	return strings.Repeat("█", n) + strings.Repeat("·", barWidth-n)
}
