package auth

const (
	MsgLoginEmpty       = "아이디와 비밀번호를 입력해주세요."
	MsgInvalidEmail     = "올바른 이메일 형식이 아닙니다."
	MsgLoginSuccess     = "로그인 성공!"
	MsgLoginFailed      = "로그인에 실패했습니다."
	MsgUnknownUserRole  = "알 수 없는 사용자 역할입니다."
	MsgUnknownRole      = "알 수 없는 역할입니다."
	MsgLogoutConfirm    = "로그아웃 하시겠습니까?"
	MsgEmailUnknown     = "가입되지 않은 이메일입니다."
	MsgWrongPassword    = "잘못된 비밀번호입니다."
	MsgEmailTaken       = "이미 가입된 이메일입니다."
	MsgSignupFailed     = "회원가입에 실패했습니다. 다시 시도해주세요."
	MsgSignupComplete   = "회원가입이 완료되었습니다! 로그인해주세요."
	MsgFieldsRequired   = "모든 항목을 입력해주세요."
	MsgRoleRequired     = "역할을 선택해주세요."
	MsgStudentIDMissing = "학번을 입력해주세요."
	MsgPasswordMismatch = "비밀번호가 일치하지 않습니다."
	MsgPasswordTooShort = "비밀번호는 최소 6자 이상이어야 합니다."
	MsgEmailUnverified  = "이메일 인증을 완료해주세요."

	MsgCodeSent         = "인증코드가 발송되었습니다. 3분 안에 입력해주세요."
	MsgCodeSendFailed   = "인증코드 발송에 실패했습니다."
	MsgCodeNotSent      = "먼저 인증코드를 발송해주세요."
	MsgCodeExpired      = "인증코드가 만료되었습니다. 다시 요청해주세요."
	MsgCodeEmpty        = "인증코드를 입력해주세요."
	MsgCodeVerified     = "이메일 인증이 완료되었습니다."
	MsgCodeVerifyFailed = "인증코드 확인에 실패했습니다."
	MsgEmailChanged     = "이메일이 변경되어 다시 인증이 필요합니다."
)
