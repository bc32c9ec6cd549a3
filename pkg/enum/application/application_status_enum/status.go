// Package application_status_enum 定义领养申请的状态与状态流转表
// 所有状态变更都必须先经过 Next 校验，再落库
package application_status_enum

// Status 申请状态
type Status string

const (
	Pending   Status = "pending"   // 待处理
	Approved  Status = "approved"  // 已通过（终态）
	Rejected  Status = "rejected"  // 已拒绝（终态）
	Withdrawn Status = "withdrawn" // 已撤回（记录被删除，不落库）
)

// Action 对申请执行的动作
type Action string

const (
	Approve  Action = "approve"  // 宠物主人通过
	Reject   Action = "reject"   // 宠物主人拒绝
	Withdraw Action = "withdraw" // 申请人撤回
)

// transitions 当前状态 × 动作 → 下一状态
// 不在表中的组合一律拒绝
var transitions = map[Status]map[Action]Status{
	Pending: {
		Approve:  Approved,
		Reject:   Rejected,
		Withdraw: Withdrawn,
	},
}

// Next 返回执行动作后的状态，ok=false 表示该流转不被允许
func Next(current Status, action Action) (next Status, ok bool) {
	next, ok = transitions[current][action]
	return
}

// ActionFor 将请求中的目标状态映射为动作
// 只接受 approved / rejected / withdrawn 三个字面值
func ActionFor(target string) (Action, bool) {
	switch Status(target) {
	case Approved:
		return Approve, true
	case Rejected:
		return Reject, true
	case Withdrawn:
		return Withdraw, true
	default:
		return "", false
	}
}

// OwnerAction 该动作是否只能由宠物主人发起
func (a Action) OwnerAction() bool {
	return a == Approve || a == Reject
}
