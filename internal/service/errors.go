package service

import "errors"

// サービス層の番兵エラー。ハンドラ層で HTTP ステータスに変換される。
var (
	// ErrForbidden は操作権限がないことを示す
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials はメールアドレスまたはパスワードの不一致を示す
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken は登録済みメールアドレスの重複を示す
	ErrEmailTaken = errors.New("email already registered")
	// ErrAccountSuspended は停止済みアカウントでの操作を示す
	ErrAccountSuspended = errors.New("account suspended")
	// ErrValidation は入力値の検証エラーを示す。fmt.Errorf でラップして詳細を付ける。
	ErrValidation = errors.New("validation failed")
)
