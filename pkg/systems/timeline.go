package systems

import (
	"container/heap"
)

// CancelToken 实体生命周期拥有的取消令牌
//
// 在某个令牌下预约的所有回调，在触发时都会先检查令牌；
// 令牌取消后回调不再执行，重复计时器的后续环节也不再预约。
// nil 令牌视为永不取消。
type CancelToken struct {
	name      string
	cancelled bool
}

// NewCancelToken 创建新的取消令牌
func NewCancelToken(name string) *CancelToken {
	return &CancelToken{name: name}
}

// Cancel 取消令牌（幂等）
func (t *CancelToken) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Cancelled 令牌是否已取消
func (t *CancelToken) Cancelled() bool {
	return t != nil && t.cancelled
}

// Name 令牌名称（调试用）
func (t *CancelToken) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// TimerHandle 单条预约（或一条重复链）的句柄
type TimerHandle struct {
	cancelled bool
	done      bool
}

// Cancel 取消这条预约；重复链的剩余环节一并取消
func (h *TimerHandle) Cancel() {
	if h != nil {
		h.cancelled = true
	}
}

// Active 预约是否仍会触发
func (h *TimerHandle) Active() bool {
	return h != nil && !h.cancelled && !h.done
}

// timerEntry 时间轴上的一条待触发回调
type timerEntry struct {
	due       float64
	seq       uint64
	token     *CancelToken
	handle    *TimerHandle
	fn        func(i int)
	iteration int
	remaining int // 本次触发之后还要触发的次数
	interval  float64
}

// timerQueue 按 (due, seq) 排序的小顶堆
type timerQueue []*timerEntry

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}
func (q timerQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *timerQueue) Push(x interface{}) { *q = append(*q, x.(*timerEntry)) }
func (q *timerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Timeline 协作式时间轴
//
// 所有延时回调都在宿主每帧调用 Advance 时同步触发，没有额外的 goroutine。
// 暂停期间 Advance 不推进时间，挂起的回调随之冻结。
type Timeline struct {
	now    float64
	paused bool
	seq    uint64
	queue  timerQueue
}

// NewTimeline 创建时间轴
func NewTimeline() *Timeline {
	return &Timeline{queue: make(timerQueue, 0)}
}

// Now 时间轴当前时间（秒）
// 回调执行期间返回该回调的计划触发时间
func (tl *Timeline) Now() float64 {
	return tl.now
}

// Pause 冻结时间轴
func (tl *Timeline) Pause() {
	tl.paused = true
}

// Resume 恢复时间轴
func (tl *Timeline) Resume() {
	tl.paused = false
}

// IsPaused 是否处于暂停状态
func (tl *Timeline) IsPaused() bool {
	return tl.paused
}

// Pending 尚未触发且未被取消的预约数量
func (tl *Timeline) Pending() int {
	n := 0
	for _, e := range tl.queue {
		if !e.handle.cancelled && !e.token.Cancelled() {
			n++
		}
	}
	return n
}

// After 在 delay 秒后执行 fn 一次
func (tl *Timeline) After(token *CancelToken, delay float64, fn func()) *TimerHandle {
	return tl.schedule(token, delay, 0, 0, func(int) { fn() })
}

// Repeat 每隔 interval 秒执行一次 fn，共 count 次
// 第一次在 interval 秒后触发，fn 的参数为触发序号（从 0 开始）
// count <= 0 时不预约任何回调
func (tl *Timeline) Repeat(token *CancelToken, interval float64, count int, fn func(i int)) *TimerHandle {
	if count <= 0 {
		return &TimerHandle{done: true}
	}
	return tl.schedule(token, interval, interval, count-1, fn)
}

func (tl *Timeline) schedule(token *CancelToken, delay, interval float64, remaining int, fn func(i int)) *TimerHandle {
	if delay < 0 {
		delay = 0
	}
	handle := &TimerHandle{}
	tl.push(&timerEntry{
		due:       tl.now + delay,
		token:     token,
		handle:    handle,
		fn:        fn,
		remaining: remaining,
		interval:  interval,
	})
	return handle
}

func (tl *Timeline) push(e *timerEntry) {
	tl.seq++
	e.seq = tl.seq
	heap.Push(&tl.queue, e)
}

// Advance 推进时间并按计划时间顺序触发到期回调
//
// 回调中新预约、且在本帧内到期的回调也会在本次调用中触发
func (tl *Timeline) Advance(dt float64) {
	if tl.paused || dt <= 0 {
		return
	}
	target := tl.now + dt

	for tl.queue.Len() > 0 {
		next := tl.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&tl.queue)

		// 令牌或句柄已取消：整条链就此终止
		if next.handle.cancelled || next.token.Cancelled() {
			next.handle.done = true
			continue
		}

		if next.due > tl.now {
			tl.now = next.due
		}
		next.fn(next.iteration)

		if next.remaining > 0 && !next.handle.cancelled && !next.token.Cancelled() {
			next.remaining--
			next.iteration++
			next.due += next.interval
			tl.push(next)
		} else {
			next.handle.done = true
		}
	}

	tl.now = target
}

// Clear 丢弃所有预约（场景销毁时调用）
func (tl *Timeline) Clear() {
	for _, e := range tl.queue {
		e.handle.done = true
	}
	tl.queue = tl.queue[:0]
}

// Reset 丢弃所有预约并把时间归零
func (tl *Timeline) Reset() {
	tl.Clear()
	tl.now = 0
	tl.paused = false
}
