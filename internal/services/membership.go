package services

import (
	"github.com/bionicotaku/lingo-services-library/internal/models/po"
)

// MembershipAction 是视频相对目标文件夹的唯一处理动作。
type MembershipAction int

const (
	// ActionInsert 新建规范视频并加入目标文件夹。
	ActionInsert MembershipAction = iota + 1
	// ActionRelocate 将已有视频从原文件夹移入目标文件夹。
	ActionRelocate
	// ActionRetain 不做任何写入。
	ActionRetain
)

// String 返回动作名称，用于日志与指标标签。
func (a MembershipAction) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionRelocate:
		return "relocate"
	case ActionRetain:
		return "retain"
	default:
		return "unknown"
	}
}

// MembershipDecision 是单个视频的分类结果；From 仅在 Relocate 时非空。
type MembershipDecision struct {
	Action MembershipAction
	Video  ResolvedVideo
	From   *po.FolderRef
}

// MembershipCounts 汇总一批分类或写入的动作数量，Pushed = Inserted + Relocated。
type MembershipCounts struct {
	Inserted  int
	Relocated int
	Retained  int
	Pushed    int
}

func (c *MembershipCounts) add(action MembershipAction) {
	switch action {
	case ActionInsert:
		c.Inserted++
		c.Pushed++
	case ActionRelocate:
		c.Relocated++
		c.Pushed++
	case ActionRetain:
		c.Retained++
	}
}

// ClassifyMembership 按决策表为单个视频选择动作：
//
//	existed=false                          → insert
//	existed=true, 已在目标文件夹            → retain
//	existed=true, 不在目标, moveExisting=false → retain
//	existed=true, 不在目标, moveExisting=true  → relocate
func ClassifyMembership(video ResolvedVideo, target po.FolderRef, moveExisting bool) MembershipDecision {
	if !video.Existed {
		return MembershipDecision{Action: ActionInsert, Video: video}
	}
	if video.Folder != nil && video.Folder.ID == target.ID {
		return MembershipDecision{Action: ActionRetain, Video: video}
	}
	if !moveExisting {
		return MembershipDecision{Action: ActionRetain, Video: video}
	}
	var from *po.FolderRef
	if video.Folder != nil {
		ref := *video.Folder
		from = &ref
	}
	return MembershipDecision{Action: ActionRelocate, Video: video, From: from}
}

// ClassifyBatch 对一批视频分类并返回计数。
// 同一外部 id 在批次中重复出现时仅第一次参与写入，其余记为 retain。
func ClassifyBatch(videos []ResolvedVideo, target po.FolderRef, moveExisting bool) ([]MembershipDecision, MembershipCounts) {
	decisions := make([]MembershipDecision, 0, len(videos))
	var counts MembershipCounts
	seen := make(map[string]struct{}, len(videos))
	for _, video := range videos {
		var decision MembershipDecision
		if _, dup := seen[video.ExternalID]; dup {
			decision = MembershipDecision{Action: ActionRetain, Video: video}
		} else {
			seen[video.ExternalID] = struct{}{}
			decision = ClassifyMembership(video, target, moveExisting)
		}
		counts.add(decision.Action)
		decisions = append(decisions, decision)
	}
	return decisions, counts
}
