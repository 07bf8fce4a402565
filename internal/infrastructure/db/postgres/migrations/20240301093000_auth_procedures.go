package migrations

import "github.com/jmoiron/sqlx"

func init() {
	addMigration(&migration{
		version: "20240301093000",
		name:    "auth_procedures",
		up:      mig_20240301093000_auth_procedures_up,
	})
}

// New accounts are granted the author role and an invitation valid for two days.
func mig_20240301093000_auth_procedures_up(tx *sqlx.Tx) error {
	return execAll(tx,
		`CREATE OR REPLACE FUNCTION authenticate(p_username TEXT, p_password TEXT)
		RETURNS TABLE (success BOOLEAN, message TEXT, roles INTEGER[])
		LANGUAGE plpgsql AS $$
		DECLARE
			v_user users%ROWTYPE;
		BEGIN
			SELECT * INTO v_user FROM users WHERE users.username = p_username;
			IF NOT FOUND OR v_user.password_hash <> crypt(p_password, v_user.password_hash) THEN
				RETURN QUERY SELECT FALSE, 'Invalid username or password'::TEXT, ARRAY[]::INTEGER[];
				RETURN;
			END IF;
			IF NOT v_user.active THEN
				RETURN QUERY SELECT FALSE, 'Please confirm your email address before logging in'::TEXT, ARRAY[]::INTEGER[];
				RETURN;
			END IF;
			RETURN QUERY SELECT TRUE, 'Login successful'::TEXT,
				COALESCE((SELECT array_agg(ur.role_id ORDER BY ur.role_id)
					FROM user_roles ur WHERE ur.user_id = v_user.id), ARRAY[]::INTEGER[]);
		END
		$$`,
		registerFunction,
		`CREATE OR REPLACE FUNCTION confirm(p_invitation TEXT)
		RETURNS TABLE (success BOOLEAN, message TEXT)
		LANGUAGE plpgsql AS $$
		DECLARE
			v_user_id INTEGER;
		BEGIN
			DELETE FROM invitations i
			WHERE i.code = p_invitation AND i.expires_at > NOW()
			RETURNING i.user_id INTO v_user_id;

			IF v_user_id IS NULL THEN
				RETURN QUERY SELECT FALSE, 'Invalid or expired confirmation link'::TEXT;
				RETURN;
			END IF;

			UPDATE users SET active = TRUE WHERE users.id = v_user_id;
			RETURN QUERY SELECT TRUE, 'Account confirmed. You can now log in.'::TEXT;
		END
		$$`,
	)
}

// registerFunction creates a pending account. A concurrent registration that
// loses the race on users.username gets the same rejection as the EXISTS check.
const registerFunction = `CREATE OR REPLACE FUNCTION register(p_username TEXT, p_password TEXT, p_confirm TEXT)
	RETURNS TABLE (success BOOLEAN, message TEXT, invitation TEXT)
	LANGUAGE plpgsql AS $$
	DECLARE
		v_user_id INTEGER;
		v_code    TEXT;
	BEGIN
		IF p_username IS NULL OR length(trim(p_username)) = 0 THEN
			RETURN QUERY SELECT FALSE, 'Username is required'::TEXT, NULL::TEXT;
			RETURN;
		END IF;
		IF p_password IS NULL OR length(p_password) = 0 THEN
			RETURN QUERY SELECT FALSE, 'Password is required'::TEXT, NULL::TEXT;
			RETURN;
		END IF;
		IF p_password IS DISTINCT FROM p_confirm THEN
			RETURN QUERY SELECT FALSE, 'Passwords do not match'::TEXT, NULL::TEXT;
			RETURN;
		END IF;
		IF EXISTS (SELECT 1 FROM users WHERE users.username = p_username) THEN
			RETURN QUERY SELECT FALSE, 'Username is already taken'::TEXT, NULL::TEXT;
			RETURN;
		END IF;

		BEGIN
			INSERT INTO users (username, password_hash)
			VALUES (p_username, crypt(p_password, gen_salt('bf')))
			RETURNING users.id INTO v_user_id;
		EXCEPTION WHEN unique_violation THEN
			RETURN QUERY SELECT FALSE, 'Username is already taken'::TEXT, NULL::TEXT;
			RETURN;
		END;

		INSERT INTO user_roles (user_id, role_id) VALUES (v_user_id, 2);

		v_code := encode(gen_random_bytes(24), 'hex');
		INSERT INTO invitations (code, user_id, expires_at)
		VALUES (v_code, v_user_id, NOW() + INTERVAL '2 days');

		RETURN QUERY SELECT TRUE, 'Registration successful'::TEXT, v_code;
	END
	$$`
