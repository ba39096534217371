package student

const (
	MsgCoursesLoadFailed   = "강좌 목록을 불러오는데 실패했습니다."
	MsgMyCoursesLoadFailed = "수강 내역을 불러오는데 실패했습니다."
	MsgCourseFull          = "정원이 가득 찼습니다."
	MsgEnrolled            = "수강 신청이 완료되었습니다."
	MsgCancelled           = "수강 신청이 취소되었습니다."
	MsgActionFailed        = "처리 중 오류가 발생했습니다."
	MsgCancelFailed        = "취소 처리 중 오류가 발생했습니다."
	MsgSurveyLoadFailed    = "설문 정보를 불러올 수 없습니다."
	MsgSurveyDone          = "이미 참여하신 설문입니다."
	MsgAnswerAll           = "모든 문항에 답변해주세요."
	MsgSurveySubmitted     = "설문 참여가 완료되었습니다!"
	MsgSurveySubmitFailed  = "설문 제출에 실패했습니다."

	msgEnrollConfirm = "'%s' 수강을 신청할까요?"
	msgCancelConfirm = "'%s' 수강을 취소할까요?"

	defaultCategory = "기타"
	defaultRoom     = "미정"
)
