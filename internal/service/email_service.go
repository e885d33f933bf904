package service

import (
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/redis"
)

var emailScopeSubject = map[string]string{
	"register": "注册验证",
	"reset":    "重置密码",
}

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailRepository{}}
}

// SendCode 发送验证码：先写 pending 键，邮件送达后转 confirmed，
// 确认失败清掉 pending，不留半截状态
func (s *EmailService) SendCode(scope, email string) error {
	subject, ok := emailScopeSubject[scope]
	if !ok {
		return pkg.Validation("invalid scope")
	}

	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetPendingCode(scope, email, code); err != nil {
		return err
	}

	html := pkg.EmailCodeHTML(subject, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, subject+"验证码", html); err != nil {
		return err
	}

	if err = s.rds.ConfirmCode(scope, email); err != nil {
		_ = s.rds.DeletePendingCode(scope, email)
		return err
	}
	return nil
}

// VerifyCode 校验验证码并一次性删除
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetConfirmedCode(scope, email)
	if err != nil {
		// 不存在或已过期
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteCode(scope, email); err != nil {
		return false, err
	}
	return true, nil
}
