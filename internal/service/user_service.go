package service

import (
	"errors"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
	"Lee_Feed/internal/repository/mysql"
	"Lee_Feed/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo     *mysql.UserRepository
	rUser    *redis.UserRepository
	emailSvc *EmailService
}

func NewUserService(emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: mysql.DB},
		rUser:    &redis.UserRepository{},
		emailSvc: emailSvc,
	}
}

// Register 注册默认 user 角色；moderator/admin 由运维直接改库，不走注册
func (s *UserService) Register(username, password, email, code string) error {
	// 验证code是否正确
	ok, err := s.emailSvc.VerifyCode("register", email, code)
	if err != nil || !ok {
		return pkg.Validation("verification failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Role:     model.RoleUser,
		Email:    email,
	}

	return s.repo.Create(user)
}

func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}
	// 角色跟着身份进 claims，业务层按权限表校验
	token, err := pkg.GeneratePair(user.ID, int(user.Role))
	if err != nil {
		return nil, err
	}
	err = s.rUser.AddUserToken(user.ID, token.AccessToken)
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	if err := s.rUser.DeleteUserToken(usrID); err != nil {
		return err
	}
	return nil
}

func (s *UserService) ResetCode(email, code, newPassword string) error {
	// 校验code正确性
	ok, err := s.emailSvc.VerifyCode("reset", email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	// 获取用户信息并更新密码
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	err = s.repo.UpdatePassword(user, string(hash))
	if err != nil {
		return err
	}

	return nil
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

// ChangePassword 登录态修改密码
func (s *UserService) ChangePassword(usrId uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrId)
	if err != nil {
		return err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword))
	if err != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	err = s.repo.UpdatePassword(user, string(hash))
	if err != nil {
		return err
	}

	err = s.Logout(usrId)
	return err
}
