package brailleimg

import (
	"io"
	"unicode/utf8"
)

// Runes holds all 256 braille patterns indexed by cell value. Bit 0 is the
// least significant and the raised dots map to bits as follows:
//
//	+------+
//	| 0  3 |
//	| 1  4 |
//	| 2  5 |
//	| 6  7 |
//	+------+
//
// See https://en.wikipedia.org/wiki/Braille_Patterns#Identifying.2C_naming_and_ordering)
var Runes = [256]rune{
	'⠀', '⠁', '⠂', '⠃', '⠄', '⠅', '⠆', '⠇',
	'⠈', '⠉', '⠊', '⠋', '⠌', '⠍', '⠎', '⠏',
	'⠐', '⠑', '⠒', '⠓', '⠔', '⠕', '⠖', '⠗',
	'⠘', '⠙', '⠚', '⠛', '⠜', '⠝', '⠞', '⠟',
	'⠠', '⠡', '⠢', '⠣', '⠤', '⠥', '⠦', '⠧',
	'⠨', '⠩', '⠪', '⠫', '⠬', '⠭', '⠮', '⠯',
	'⠰', '⠱', '⠲', '⠳', '⠴', '⠵', '⠶', '⠷',
	'⠸', '⠹', '⠺', '⠻', '⠼', '⠽', '⠾', '⠿',
	'⡀', '⡁', '⡂', '⡃', '⡄', '⡅', '⡆', '⡇',
	'⡈', '⡉', '⡊', '⡋', '⡌', '⡍', '⡎', '⡏',
	'⡐', '⡑', '⡒', '⡓', '⡔', '⡕', '⡖', '⡗',
	'⡘', '⡙', '⡚', '⡛', '⡜', '⡝', '⡞', '⡟',
	'⡠', '⡡', '⡢', '⡣', '⡤', '⡥', '⡦', '⡧',
	'⡨', '⡩', '⡪', '⡫', '⡬', '⡭', '⡮', '⡯',
	'⡰', '⡱', '⡲', '⡳', '⡴', '⡵', '⡶', '⡷',
	'⡸', '⡹', '⡺', '⡻', '⡼', '⡽', '⡾', '⡿',
	'⢀', '⢁', '⢂', '⢃', '⢄', '⢅', '⢆', '⢇',
	'⢈', '⢉', '⢊', '⢋', '⢌', '⢍', '⢎', '⢏',
	'⢐', '⢑', '⢒', '⢓', '⢔', '⢕', '⢖', '⢗',
	'⢘', '⢙', '⢚', '⢛', '⢜', '⢝', '⢞', '⢟',
	'⢠', '⢡', '⢢', '⢣', '⢤', '⢥', '⢦', '⢧',
	'⢨', '⢩', '⢪', '⢫', '⢬', '⢭', '⢮', '⢯',
	'⢰', '⢱', '⢲', '⢳', '⢴', '⢵', '⢶', '⢷',
	'⢸', '⢹', '⢺', '⢻', '⢼', '⢽', '⢾', '⢿',
	'⣀', '⣁', '⣂', '⣃', '⣄', '⣅', '⣆', '⣇',
	'⣈', '⣉', '⣊', '⣋', '⣌', '⣍', '⣎', '⣏',
	'⣐', '⣑', '⣒', '⣓', '⣔', '⣕', '⣖', '⣗',
	'⣘', '⣙', '⣚', '⣛', '⣜', '⣝', '⣞', '⣟',
	'⣠', '⣡', '⣢', '⣣', '⣤', '⣥', '⣦', '⣧',
	'⣨', '⣩', '⣪', '⣫', '⣬', '⣭', '⣮', '⣯',
	'⣰', '⣱', '⣲', '⣳', '⣴', '⣵', '⣶', '⣷',
	'⣸', '⣹', '⣺', '⣻', '⣼', '⣽', '⣾', '⣿',
}

// filler stands in for the blank pattern when empty cells are disallowed.
// Some terminals draw U+2800 narrower than the other patterns, which skews rows.
const filler = 1 << 2

// RenderedLen returns the exact number of bytes Render produces with the given
// row separator.
func (g *Grid) RenderedLen(sep rune) int {
	return len(g.cells)*utf8.RuneLen(Runes[0]) + (g.rows-1)*utf8.RuneLen(sep)
}

// Render encodes the grid as braille characters, one per cell, left-right and
// top-bottom. Rows are joined by sep; there is no trailing separator. If
// noEmpty is set, blank cells are rendered with a single raised dot instead.
func (g *Grid) Render(noEmpty bool, sep rune) string {
	return string(g.appendRender(make([]byte, 0, g.RenderedLen(sep)), noEmpty, sep))
}

func (g *Grid) appendRender(buf []byte, noEmpty bool, sep rune) []byte {
	for i, v := range g.cells {
		if i != 0 && i%g.cols == 0 {
			buf = utf8.AppendRune(buf, sep)
		}
		if v == 0 && noEmpty {
			v = filler
		}
		buf = utf8.AppendRune(buf, Runes[v])
	}
	return buf
}

// WriteTo writes the grid to w as newline separated rows of braille, ending
// with a newline. Blank cells are replaced by a single dot.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	return g.writeRender(w, true, '\n')
}

// writeRender writes the rendered grid and a trailing newline in one write.
func (g *Grid) writeRender(w io.Writer, noEmpty bool, sep rune) (int64, error) {
	buf := make([]byte, 0, g.RenderedLen(sep)+1)
	buf = append(g.appendRender(buf, noEmpty, sep), '\n')
	n, err := w.Write(buf)
	return int64(n), err
}
