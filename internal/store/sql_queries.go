// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evgeny Bolotov

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/ebolotov/itemvault/models"
)

// userColumns lists every persisted column of the users table in scan order.
var userColumns = []string{
	"user_id",
	"login",
	"password_hash",
	"failed_attempts",
	"last_attempt_time",
	"locked_until",
	"passkey_credential_id",
	"passkey_public_key",
	"current_challenge",
	"created_at",
}

// itemColumns lists every persisted column of the items table in scan order.
var itemColumns = []string{
	"item_id",
	"user_id",
	"name",
	"description",
	"created_at",
}

func buildInsertUserQuery(ph sq.PlaceholderFormat, user models.User) (string, []any, error) {
	return sq.Insert(user.TableName()).
		Columns("login", "password_hash").
		Values(user.Login, user.PasswordHash).
		PlaceholderFormat(ph).
		ToSql()
}

// buildSelectCreatedAtQuery reads back the server-assigned creation timestamp
// of a freshly inserted row for drivers without RETURNING support.
func buildSelectCreatedAtQuery(ph sq.PlaceholderFormat, table, idColumn string, id int64) (string, []any, error) {
	return sq.Select("created_at").
		From(table).
		Where(sq.Eq{idColumn: id}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildFindUserByLoginQuery(ph sq.PlaceholderFormat, login string) (string, []any, error) {
	return sq.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"login": login}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildFindUserByIDQuery(ph sq.PlaceholderFormat, userID int64) (string, []any, error) {
	return sq.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildUpdateLockoutQuery(ph sq.PlaceholderFormat, user models.User) (string, []any, error) {
	return sq.Update(user.TableName()).
		Set("failed_attempts", user.FailedAttempts).
		Set("last_attempt_time", user.LastAttemptTime).
		Set("locked_until", user.LockedUntil).
		Where(sq.Eq{"user_id": user.UserID}).
		PlaceholderFormat(ph).
		ToSql()
}

// buildUpdatePasskeyQuery stores the registered credential and clears the
// in-flight ceremony state in a single statement.
func buildUpdatePasskeyQuery(ph sq.PlaceholderFormat, user models.User) (string, []any, error) {
	return sq.Update(user.TableName()).
		Set("passkey_credential_id", user.PasskeyCredentialID).
		Set("passkey_public_key", user.PasskeyPublicKey).
		Set("current_challenge", user.CurrentChallenge).
		Where(sq.Eq{"user_id": user.UserID}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildUpdateChallengeQuery(ph sq.PlaceholderFormat, userID int64, challenge string) (string, []any, error) {
	return sq.Update(models.User{}.TableName()).
		Set("current_challenge", challenge).
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildInsertItemQuery(ph sq.PlaceholderFormat, item models.Item) (string, []any, error) {
	return sq.Insert(item.TableName()).
		Columns("user_id", "name", "description").
		Values(item.UserID, item.Name, item.Description).
		PlaceholderFormat(ph).
		ToSql()
}

func buildSelectItemsQuery(ph sq.PlaceholderFormat, userID int64) (string, []any, error) {
	return sq.Select(itemColumns...).
		From(models.Item{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("item_id").
		PlaceholderFormat(ph).
		ToSql()
}

func buildSelectItemQuery(ph sq.PlaceholderFormat, userID, itemID int64) (string, []any, error) {
	return sq.Select(itemColumns...).
		From(models.Item{}.TableName()).
		Where(sq.Eq{"item_id": itemID, "user_id": userID}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildUpdateItemQuery(ph sq.PlaceholderFormat, item models.Item) (string, []any, error) {
	return sq.Update(item.TableName()).
		Set("name", item.Name).
		Set("description", item.Description).
		Where(sq.Eq{"item_id": item.ID, "user_id": item.UserID}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildDeleteItemQuery(ph sq.PlaceholderFormat, userID, itemID int64) (string, []any, error) {
	return sq.Delete(models.Item{}.TableName()).
		Where(sq.Eq{"item_id": itemID, "user_id": userID}).
		PlaceholderFormat(ph).
		ToSql()
}
