package teacher

const (
	MsgCoursesLoadFailed   = "강좌 목록을 불러오는데 실패했습니다."
	MsgCreateRequired      = "필수 항목을 모두 입력해주세요."
	MsgUpdateRequired      = "모든 필수 항목을 입력해주세요."
	MsgCapacityTooSmall    = "정원은 1명 이상이어야 합니다."
	MsgCourseRequested     = "강좌 개설 신청이 완료되었습니다. 관리자 승인을 기다려주세요."
	MsgCourseRequestFailed = "강좌 개설 신청에 실패했습니다."
	MsgCourseUpdated       = "강좌가 수정되었습니다."
	MsgCourseUpdateFailed  = "강좌 수정에 실패했습니다."

	MsgDateRequired      = "날짜를 선택해주세요."
	MsgAttendanceEmpty   = "출석 체크를 하나 이상 선택해주세요."
	MsgAttendanceSaved   = "출결이 저장되었습니다."
	MsgAttendanceFailed  = "출결 저장에 실패했습니다."
	MsgNoticeRequired    = "제목과 내용을 입력해주세요."
	MsgNoticeCreated     = "공지가 작성되었습니다."
	MsgNoticeCreateFail  = "공지 작성에 실패했습니다."
	MsgNoticeUpdated     = "공지가 수정되었습니다."
	MsgNoticeUpdateFail  = "공지 수정에 실패했습니다."
	MsgNoticeDeleteAsk   = "정말 삭제하시겠습니까?"
	MsgNoticeDeleted     = "공지가 삭제되었습니다."
	MsgNoticeDeleteFail  = "공지 삭제에 실패했습니다."
	MsgSurveyTitle       = "설문 제목을 입력해주세요."
	MsgQuestionsRequired = "최소 1개 이상의 질문을 추가해주세요."
	MsgSurveyCreated     = "설문조사가 생성되었습니다."
	MsgSurveyFailed      = "설문 생성에 실패했습니다."
)
