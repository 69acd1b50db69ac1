package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态
// 鼠标和触摸统一处理，触摸优先
type PointerState struct {
	JustPressed bool // 本帧刚按下/刚触摸
	X, Y        int  // 指针位置（逻辑屏幕坐标）
	Touching    bool // 是否来自触摸
}

// ReadPointer 读取当前帧的指针状态
func ReadPointer() PointerState {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerState{JustPressed: true, X: x, Y: y, Touching: true}
	}
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerState{X: x, Y: y, Touching: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerState{
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		X:           x,
		Y:           y,
	}
}

// WithinRadius 点 (px, py) 是否落在以 (cx, cy) 为圆心、r 为半径的圆内
func WithinRadius(px, py, cx, cy, r float64) bool {
	dx := px - cx
	dy := py - cy
	return dx*dx+dy*dy <= r*r
}
