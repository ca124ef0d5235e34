// Copyright 2026 The Coldfire Project Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/coldfire-project/coldfire/lib/tui"
)

// messageParserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share; parsing creates per-call state via Parse(reader).
var (
	messageParserInstance goldmark.Markdown
	messageParserOnce     sync.Once
)

func getMessageParser() goldmark.Markdown {
	messageParserOnce.Do(func() {
		messageParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough),
		)
	})
	return messageParserInstance
}

// renderMessageMarkdown renders a chat message body as styled
// terminal text wrapped to the given width. Chat messages use a
// deliberately small markdown surface: emphasis, strikethrough, code
// spans and fenced blocks, lists, blockquotes, and links. Headings
// flatten to bold text so a stray "#" can't shout across the thread.
// Soft line breaks become spaces so hard-wrapped source reflows at
// any pane width.
func renderMessageMarkdown(input string, theme tui.Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	document := getMessageParser().Parser().Parse(text.NewReader(source))

	// Force the ANSI256 profile: this output always targets the
	// bubbletea screen, so auto-detection (which sees no TTY under
	// tests) must not strip the colors.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &messageRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)

	return strings.TrimRight(renderer.output.String(), "\n")
}

// messageRenderer walks a goldmark AST and accumulates styled
// terminal text. Inline content collects in a buffer and gets
// word-wrapped as a unit when the enclosing block closes, which is
// why this is a direct ast.Walk rather than a goldmark renderer
// implementation.
type messageRenderer struct {
	source []byte
	theme  tui.Theme
	width  int

	output strings.Builder
	inline strings.Builder

	// Continuation prefix for nested blocks (blockquote bars, list
	// indents) and the bullet that replaces it on a list item's first
	// line.
	prefixes      []string
	prefixWidth   int
	pendingBullet string

	// Style nesting depth for inline emphasis. Depths rather than
	// booleans so nested markers unwind correctly.
	boldDepth   int
	italicDepth int
	strikeDepth int

	listCounters []int // Per-level ordered-list counter; 0 for bullet lists.

	lipRenderer *lipgloss.Renderer
}

func (renderer *messageRenderer) newStyle() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

func (renderer *messageRenderer) contentWidth() int {
	width := renderer.width - renderer.prefixWidth
	if width < 10 {
		width = 10
	}
	return width
}

func (renderer *messageRenderer) pushPrefix(prefix string) {
	renderer.prefixes = append(renderer.prefixes, prefix)
	renderer.prefixWidth += ansi.StringWidth(prefix)
}

func (renderer *messageRenderer) popPrefix() {
	if len(renderer.prefixes) == 0 {
		return
	}
	last := renderer.prefixes[len(renderer.prefixes)-1]
	renderer.prefixes = renderer.prefixes[:len(renderer.prefixes)-1]
	renderer.prefixWidth -= ansi.StringWidth(last)
}

func (renderer *messageRenderer) linePrefix() string {
	return strings.Join(renderer.prefixes, "")
}

// emitBlock word-wraps content to the available width, applies the
// line prefixes (pending bullet on the first line), and appends it to
// the output followed by a newline.
func (renderer *messageRenderer) emitBlock(content string) {
	if content == "" {
		return
	}
	wrapped := ansi.Wrap(content, renderer.contentWidth(), " ,.;-")
	for index, line := range strings.Split(wrapped, "\n") {
		if index == 0 && renderer.pendingBullet != "" {
			renderer.output.WriteString(renderer.pendingBullet)
			renderer.pendingBullet = ""
		} else {
			renderer.output.WriteString(renderer.linePrefix())
		}
		renderer.output.WriteString(line)
		renderer.output.WriteString("\n")
	}
}

// flushInline emits the accumulated inline buffer as a block.
func (renderer *messageRenderer) flushInline() {
	content := renderer.inline.String()
	renderer.inline.Reset()
	renderer.emitBlock(content)
}

// styledText applies the current emphasis nesting to a text fragment.
func (renderer *messageRenderer) styledText(content string) string {
	style := renderer.newStyle().Foreground(renderer.theme.NormalText)
	if renderer.boldDepth > 0 {
		style = style.Bold(true)
	}
	if renderer.italicDepth > 0 {
		style = style.Italic(true)
	}
	if renderer.strikeDepth > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// nodeText collects the raw text of a node's line segments.
func (renderer *messageRenderer) nodeText(node ast.Node) string {
	var buffer strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		buffer.Write(segment.Value(renderer.source))
	}
	return buffer.String()
}

func (renderer *messageRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindDocument:
		// Nothing to do at either boundary.

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.flushInline()
		}

	case ast.KindHeading:
		// Headings flatten to a bold line at normal size.
		if entering {
			renderer.inline.Reset()
			renderer.boldDepth++
		} else {
			renderer.boldDepth--
			renderer.flushInline()
		}

	case ast.KindFencedCodeBlock:
		if entering {
			block := node.(*ast.FencedCodeBlock)
			renderer.emitCode(renderer.nodeText(block), string(block.Language(renderer.source)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			renderer.emitCode(renderer.nodeText(node), "")
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			renderer.pushPrefix(renderer.newStyle().
				Foreground(renderer.theme.BorderColor).
				Render("│") + " ")
		} else {
			renderer.popPrefix()
		}

	case ast.KindList:
		if entering {
			counter := 0
			if list := node.(*ast.List); list.IsOrdered() {
				counter = list.Start
			}
			renderer.listCounters = append(renderer.listCounters, counter)
		} else {
			renderer.listCounters = renderer.listCounters[:len(renderer.listCounters)-1]
		}

	case ast.KindListItem:
		if entering {
			renderer.enterListItem()
		} else {
			renderer.popPrefix()
		}

	case ast.KindThematicBreak:
		if entering {
			rule := strings.Repeat("─", renderer.contentWidth())
			renderer.emitBlock(renderer.newStyle().
				Foreground(renderer.theme.BorderColor).
				Render(rule))
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			renderer.inline.WriteString(renderer.styledText(string(textNode.Segment.Value(renderer.source))))
			if textNode.SoftLineBreak() {
				renderer.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				renderer.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			renderer.inline.WriteString(renderer.styledText(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			renderer.boldDepth += delta
		} else {
			renderer.italicDepth += delta
		}

	case extast.KindStrikethrough:
		if entering {
			renderer.strikeDepth++
		} else {
			renderer.strikeDepth--
		}

	case ast.KindCodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				if textNode, ok := child.(*ast.Text); ok {
					code.Write(textNode.Segment.Value(renderer.source))
				}
			}
			renderer.inline.WriteString(renderer.newStyle().
				Foreground(renderer.theme.Accent).
				Render(code.String()))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			link := node.(*ast.Link)
			label := renderer.collectInline(node)
			destination := string(link.Destination)
			renderer.inline.WriteString(label)
			if destination != "" {
				renderer.inline.WriteString(renderer.newStyle().
					Foreground(renderer.theme.FaintText).
					Render(" (" + destination + ")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(renderer.source))
			renderer.inline.WriteString(renderer.newStyle().
				Foreground(renderer.theme.RatingGood).
				Underline(true).
				Render(url))
		}

	case ast.KindImage:
		if entering {
			alt := ansi.Strip(renderer.collectInline(node))
			renderer.inline.WriteString(renderer.newStyle().
				Foreground(renderer.theme.FaintText).
				Render("[image: " + alt + "]"))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindRawHTML, ast.KindHTMLBlock:
		// Raw HTML has no terminal rendering; drop it.
		if entering {
			return ast.WalkSkipChildren, nil
		}
	}

	return ast.WalkContinue, nil
}

// enterListItem sets up the bullet for the item's first line and the
// matching indent for its continuation lines.
func (renderer *messageRenderer) enterListItem() {
	if len(renderer.listCounters) == 0 {
		return
	}
	level := len(renderer.listCounters) - 1

	bullet := "• "
	if renderer.listCounters[level] > 0 {
		bullet = fmt.Sprintf("%d. ", renderer.listCounters[level])
		renderer.listCounters[level]++
	}

	renderer.pendingBullet = renderer.linePrefix() + bullet
	renderer.pushPrefix(strings.Repeat(" ", ansi.StringWidth(bullet)))
}

// emitCode renders a code block, syntax-highlighted through chroma
// when a language is given. Highlight failures fall back to faint
// plain text.
func (renderer *messageRenderer) emitCode(code, language string) {
	code = strings.TrimRight(code, "\n")

	var highlighted string
	if language != "" {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err == nil {
			highlighted = buffer.String()
		}
	}
	if highlighted == "" {
		highlighted = renderer.newStyle().
			Foreground(renderer.theme.FaintText).
			Render(code)
	}

	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		if renderer.pendingBullet != "" {
			renderer.output.WriteString(renderer.pendingBullet)
			renderer.pendingBullet = ""
		} else {
			renderer.output.WriteString(renderer.linePrefix())
		}
		renderer.output.WriteString("  " + line)
		renderer.output.WriteString("\n")
	}
}

// collectInline renders a node's children into a string, saving and
// restoring the inline buffer so the caller's accumulation state is
// untouched.
func (renderer *messageRenderer) collectInline(node ast.Node) string {
	saved := renderer.inline.String()
	renderer.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, renderer.walk)
	}
	result := renderer.inline.String()
	renderer.inline.Reset()
	renderer.inline.WriteString(saved)
	return result
}
