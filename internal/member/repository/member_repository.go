package repository

import (
	"context"
	"fmt"
	"time"

	"alumni_portal_service/internal/member/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// MemberRepository definition get Member info
type MemberRepository interface {
	CreateMember(ctx context.Context, member *domain.Member) error
	FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error)
	UpdateProfile(ctx context.Context, memberID string, updates *domain.MemberUpdates) error
	VerifyMember(ctx context.Context, memberID string) error
	SetVerificationCode(ctx context.Context, memberID, code string) error
	SetResetCode(ctx context.Context, memberID, code string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, memberID, hashedPassword string) error
	Search(ctx context.Context, search *domain.MemberSearch) ([]domain.Member, error)
	Exists(ctx context.Context, memberID string) (bool, error)
}

type memberRepository struct {
	db *pgxpool.Pool
}

// NewMemberRepository create a MemberRepository
func NewMemberRepository(db *pgxpool.Pool) MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, member_id, email, password, first_name, last_name,
	graduation_year, degree, current_position, company, location, bio, avatar_url,
	is_verified, verification_code, reset_code, reset_code_expires_at, created_at`

func (r *memberRepository) CreateMember(ctx context.Context, member *domain.Member) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO member(member_id, email, password, first_name, last_name, verification_code)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		member.MemberID, member.Email, member.Password, member.FirstName, member.LastName, member.VerificationCode)
	return err
}

func (r *memberRepository) FindByMember(ctx context.Context, memberQuery *domain.MemberQuery) (*domain.Member, error) {
	queryStr := fmt.Sprintf("SELECT %s FROM member WHERE 1=1", memberColumns)
	params := []interface{}{}
	paramCount := 1

	if memberQuery.Email != nil {
		queryStr += fmt.Sprintf(" AND email = $%d", paramCount)
		params = append(params, *memberQuery.Email)
		paramCount++
	}
	if memberQuery.MemberID != nil {
		queryStr += fmt.Sprintf(" AND member_id = $%d", paramCount)
		params = append(params, *memberQuery.MemberID)
		paramCount++
	}
	if memberQuery.ID != nil {
		queryStr += fmt.Sprintf(" AND id = $%d", paramCount)
		params = append(params, *memberQuery.ID)
		paramCount++
	}

	row := r.db.QueryRow(ctx, queryStr, params...)
	var member domain.Member
	err := row.Scan(
		&member.ID, &member.MemberID, &member.Email, &member.Password,
		&member.FirstName, &member.LastName,
		&member.GraduationYear, &member.Degree, &member.CurrentRole, &member.Company,
		&member.Location, &member.Bio, &member.AvatarURL,
		&member.IsVerified, &member.VerificationCode, &member.ResetCode, &member.ResetCodeExpiresAt,
		&member.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	return &member, nil
}

// UpdateProfile 動態組 SET 子句，只更新非 nil 欄位
func (r *memberRepository) UpdateProfile(ctx context.Context, memberID string, updates *domain.MemberUpdates) error {
	queryStr := "UPDATE member SET"
	params := []interface{}{}
	paramCount := 1

	set := func(column string, value interface{}) {
		if paramCount > 1 {
			queryStr += ","
		}
		queryStr += fmt.Sprintf(" %s = $%d", column, paramCount)
		params = append(params, value)
		paramCount++
	}

	if updates.FirstName != nil {
		set("first_name", *updates.FirstName)
	}
	if updates.LastName != nil {
		set("last_name", *updates.LastName)
	}
	if updates.GraduationYear != nil {
		set("graduation_year", *updates.GraduationYear)
	}
	if updates.Degree != nil {
		set("degree", *updates.Degree)
	}
	if updates.CurrentRole != nil {
		set("current_position", *updates.CurrentRole)
	}
	if updates.Company != nil {
		set("company", *updates.Company)
	}
	if updates.Location != nil {
		set("location", *updates.Location)
	}
	if updates.Bio != nil {
		set("bio", *updates.Bio)
	}
	if updates.AvatarURL != nil {
		set("avatar_url", *updates.AvatarURL)
	}

	if paramCount == 1 {
		// 沒有要更新的欄位
		return nil
	}

	queryStr += fmt.Sprintf(" WHERE member_id = $%d", paramCount)
	params = append(params, memberID)

	tag, err := r.db.Exec(ctx, queryStr, params...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *memberRepository) VerifyMember(ctx context.Context, memberID string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE member SET is_verified = TRUE, verification_code = NULL WHERE member_id = $1",
		memberID)
	return err
}

func (r *memberRepository) SetVerificationCode(ctx context.Context, memberID, code string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE member SET verification_code = $1 WHERE member_id = $2",
		code, memberID)
	return err
}

func (r *memberRepository) SetResetCode(ctx context.Context, memberID, code string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		"UPDATE member SET reset_code = $1, reset_code_expires_at = $2 WHERE member_id = $3",
		code, expiresAt, memberID)
	return err
}

func (r *memberRepository) ResetPassword(ctx context.Context, memberID, hashedPassword string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE member SET password = $1, reset_code = NULL, reset_code_expires_at = NULL WHERE member_id = $2",
		hashedPassword, memberID)
	return err
}

// Search 依關鍵字(姓名/公司/職稱)與篩選條件查詢已驗證會員
func (r *memberRepository) Search(ctx context.Context, search *domain.MemberSearch) ([]domain.Member, error) {
	queryStr := fmt.Sprintf("SELECT %s FROM member WHERE is_verified = TRUE", memberColumns)
	params := []interface{}{}
	paramCount := 1

	if search.Keyword != nil {
		queryStr += fmt.Sprintf(
			" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR company ILIKE $%d OR current_position ILIKE $%d)",
			paramCount, paramCount, paramCount, paramCount)
		params = append(params, "%"+*search.Keyword+"%")
		paramCount++
	}
	if search.GraduationYear != nil {
		queryStr += fmt.Sprintf(" AND graduation_year = $%d", paramCount)
		params = append(params, *search.GraduationYear)
		paramCount++
	}
	if search.Company != nil {
		queryStr += fmt.Sprintf(" AND company ILIKE $%d", paramCount)
		params = append(params, "%"+*search.Company+"%")
		paramCount++
	}

	queryStr += " ORDER BY last_name ASC, first_name ASC"

	rows, err := r.db.Query(ctx, queryStr, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(
			&member.ID, &member.MemberID, &member.Email, &member.Password,
			&member.FirstName, &member.LastName,
			&member.GraduationYear, &member.Degree, &member.CurrentRole, &member.Company,
			&member.Location, &member.Bio, &member.AvatarURL,
			&member.IsVerified, &member.VerificationCode, &member.ResetCode, &member.ResetCodeExpiresAt,
			&member.CreatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *memberRepository) Exists(ctx context.Context, memberID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM member WHERE member_id = $1)", memberID).Scan(&exists)
	return exists, err
}
