package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes はbcryptが扱えるパスワードの最大バイト数。
// これを超えるパスワードは入力検証で拒否する。
const MaxPasswordBytes = 72

// PasswordHasher はbcryptによるパスワードのハッシュ化と照合を行う。
// ハッシュごとにランダムなソルトが付与されるため、同じ平文でも毎回異なる出力になる。
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

// NewPasswordHasher はPasswordHasherを生成する。
// costがbcryptの許容範囲外の場合はbcrypt.DefaultCostを使用する。
// 未登録ユーザーの照合に使うダミーハッシュもここで同じコストで生成する。
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	seed := make([]byte, 16)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("failed to generate dummy password: %w", err)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(seed)), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to build dummy hash: %w", err)
	}

	return &PasswordHasher{cost: cost, dummyHash: dummy}, nil
}

// Cost は使用しているbcryptのコストを返す。
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash は平文パスワードのbcryptハッシュを返す。
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify は平文パスワードがハッシュと一致するかを返す。
// 比較はbcryptの定数時間比較で行う。不正な形式のハッシュはfalseになる。
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// VerifyDummy は存在しないユーザーのログイン試行で、実在ユーザーと同程度の計算時間を消費する。
// 応答時間からアカウントの存在が推測されることを防ぐ。
func (h *PasswordHasher) VerifyDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(plaintext))
}
