package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按最大宽度换行
// 优先在空格处断行，单个单词超宽时强制按字符断开
func WrapText(textStr string, face text.Face, maxWidth float64) []string {
	if textStr == "" || face == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if MeasureText(textStr, face) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if MeasureText(candidate, face) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = ""
		// 单词本身超宽，逐字符断开
		for _, r := range word {
			next := current + string(r)
			if current != "" && MeasureText(next, face) > maxWidth {
				lines = append(lines, current)
				next = string(r)
			}
			current = next
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// MeasureText 测量单行文本宽度（像素）
func MeasureText(textStr string, face text.Face) float64 {
	if textStr == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}

// CenteredX 返回使文本在 [x, x+width] 内水平居中的起点
func CenteredX(textStr string, face text.Face, x, width float64) float64 {
	return x + (width-MeasureText(textStr, face))/2
}
