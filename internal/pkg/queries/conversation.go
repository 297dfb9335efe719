package queries

const (
	conversationSelect = `
		SELECT c.id, c.patient_id, c.doctor_id, COALESCE(c.appointment_id::text, ''),
			pu.id, du.id, pu.full_name, du.full_name, c.created_at
		FROM conversations c
		JOIN patients p ON p.id = c.patient_id
		JOIN users pu ON pu.id = p.user_id
		JOIN doctors d ON d.id = c.doctor_id
		JOIN users du ON du.id = d.user_id
	`

	GetConversationByPair = conversationSelect + ` WHERE c.patient_id = $1 AND c.doctor_id = $2`

	GetConversationByID = conversationSelect + ` WHERE c.id = $1`

	ListConversationsByUser = conversationSelect + `
		WHERE pu.id = $1 OR du.id = $1
		ORDER BY c.created_at DESC
	`

	InsertConversation = `
		INSERT INTO conversations (patient_id, doctor_id, appointment_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	InsertMessage = `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	ListMessagesByConversation = `
		SELECT id, conversation_id, sender_id, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
)
