package adoptions

// Autorización: sin estado y sin escrituras. Solo el owner muta; owner y
// requester pueden leer. Cualquier otro actor recibe ErrForbidden.

func canMutate(r Request, actorID string) error {
	if actorID == "" || r.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}

func canView(r Request, actorID string) error {
	if actorID == "" {
		return ErrForbidden
	}
	if r.OwnerID != actorID && r.RequesterID != actorID {
		return ErrForbidden
	}
	return nil
}
