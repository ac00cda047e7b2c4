package constants

const (
	ListInvitations = `
	SELECT id, code, remaining_uses, created_at FROM invitations ORDER BY created_at DESC
	`

	InsertInvitation = `
	INSERT INTO invitations (id, code, remaining_uses, created_at)
	VALUES ($1, $2, $3, $4)
	`

	DeleteInvitation = `
	DELETE FROM invitations WHERE id = $1
	`

	ConsumeInvitation = `
	UPDATE invitations SET remaining_uses = remaining_uses - 1
	WHERE code = $1 AND remaining_uses > 0
	RETURNING remaining_uses
	`

	RestoreInvitation = `
	UPDATE invitations SET remaining_uses = remaining_uses + 1 WHERE code = $1
	`
)
