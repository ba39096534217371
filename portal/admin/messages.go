package admin

const (
	MsgUsersLoadFailed   = "사용자 목록을 불러오는데 실패했습니다."
	MsgRoleChanged       = "역할이 변경되었습니다."
	MsgRoleChangeFailed  = "역할 변경에 실패했습니다."
	MsgInvalidRole       = "유효하지 않은 역할입니다."
	MsgDeleteConfirm     = "정말로 삭제하시겠습니까?"
	MsgUserDeleted       = "사용자가 삭제되었습니다."
	MsgDeleteFailed      = "삭제에 실패했습니다."
	MsgCourseEnded       = "강좌가 종료 처리되었습니다."
	MsgEndFailed         = "종료 처리에 실패했습니다."
	MsgStatusFailed      = "처리에 실패했습니다."
	MsgInvalidStatus     = "유효하지 않은 상태입니다."
	MsgAllApproved       = "모든 대기 강좌가 승인되었습니다."
	MsgSurveyRequired    = "제목과 기간을 입력하세요."
	MsgQuestionsRequired = "최소 1개 이상의 질문을 추가해주세요."
	MsgPeriodFormat      = "기간 형식이 올바르지 않습니다. (예: 2025-10-01 ~ 2025-10-20)"
	MsgSurveyCreated     = "설문조사가 생성되었습니다."
	MsgSurveyFailed      = "설문 생성에 실패했습니다."
	MsgNoticeRequired    = "제목과 내용을 입력해주세요."
	MsgNoticeCreated     = "공지가 작성되었습니다."
	MsgNoticeFailed      = "공지 작성에 실패했습니다."

	msgCourseDecided = "강좌가 %s되었습니다."
)
