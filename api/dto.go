/*
dto.go - Request payloads that differ from the stored entities

PURPOSE:
  Most endpoints read and write model types and storage patches directly.
  The types here exist where the wire shape and the stored shape differ:
  a user is created with a plaintext password, and approve/reject carry
  only the approver.

NAMING CONVENTION:
  - *Request: Incoming payload
  Responses reuse model types; model.User never serializes its password.
*/
package api

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/warp/portal/model"
)

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	Email        string  `json:"email"`
	FullName     *string `json:"fullName,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// toUser hashes the password. Other fields are validated by the store.
func (req CreateUserRequest) toUser(cost int) (model.User, error) {
	if req.Password == "" {
		return model.User{}, errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	return model.User{
		Username:     req.Username,
		Password:     string(hash),
		Email:        req.Email,
		FullName:     req.FullName,
		ProfileImage: req.ProfileImage,
	}, nil
}

// LeaveDecisionRequest is the body of approve and reject.
type LeaveDecisionRequest struct {
	ApproverID *int64 `json:"approverId,omitempty"`
}
