package services

// Trim 是裁剪计算的结果。
type Trim struct {
	Start    *int
	End      *int
	Duration int
	Repeat   int
}

// Total 返回计入聚合时长的贡献值。
func (t Trim) Total() int {
	return t.Duration * t.Repeat
}

// ComputeTrim 根据原始时长、可选的 start/end 与重复次数推导有效播放时长。
//
// 时长优先级：end-start；origin-start；end；origin。repeat <= 0 视为 1。
func ComputeTrim(originDuration int, start, end *int, repeat int) (Trim, error) {
	if originDuration < 0 {
		return Trim{}, ErrInvalidRange.WithCause(validationError("origin duration %d is negative", originDuration))
	}
	if repeat <= 0 {
		repeat = 1
	}
	if start != nil && *start < 0 {
		return Trim{}, ErrInvalidRange.WithCause(validationError("start %d is negative", *start))
	}
	if end != nil && *end < 0 {
		return Trim{}, ErrInvalidRange.WithCause(validationError("end %d is negative", *end))
	}
	if start != nil && end != nil && *start >= *end {
		return Trim{}, ErrInvalidRange.WithCause(validationError("start %d must be before end %d", *start, *end))
	}
	if start != nil && *start >= originDuration {
		return Trim{}, ErrInvalidRange.WithCause(validationError("start %d exceeds origin duration %d", *start, originDuration))
	}
	if end != nil && *end > originDuration {
		return Trim{}, ErrInvalidRange.WithCause(validationError("end %d exceeds origin duration %d", *end, originDuration))
	}

	var duration int
	switch {
	case start != nil && end != nil:
		duration = *end - *start
	case start != nil:
		duration = originDuration - *start
	case end != nil:
		duration = *end
	default:
		duration = originDuration
	}
	return Trim{
		Start:    copyInt(start),
		End:      copyInt(end),
		Duration: duration,
		Repeat:   repeat,
	}, nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// pickTrim 返回覆盖值优先的裁剪端点。
func pickTrim(override, canonical *int) *int {
	if override != nil {
		return copyInt(override)
	}
	return copyInt(canonical)
}
