package cart

// Add puts qty more units of productID into the cart. A nil session starts
// a new one. The given session is never modified; on error the caller keeps
// the old cart.
func (s *Signer) Add(session *Session, productID int64, qty int) (Session, error) {
	if qty <= 0 {
		return Session{}, ErrInvalidQuantity
	}

	var items []Item
	if session != nil {
		items = cloneItems(session.Items)
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{ProductID: productID, Quantity: qty, AddedAt: s.now().UnixMilli()})
	}

	if session == nil {
		return s.Create(items)
	}
	return s.Update(*session, items)
}

// SetQuantity overwrites the quantity of productID. Zero removes the line.
func (s *Signer) SetQuantity(session Session, productID int64, qty int) (Session, error) {
	if qty < 0 {
		return Session{}, ErrInvalidQuantity
	}
	if qty == 0 {
		return s.Remove(session, productID)
	}

	items := cloneItems(session.Items)
	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = qty
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{ProductID: productID, Quantity: qty, AddedAt: s.now().UnixMilli()})
	}
	return s.Update(session, items)
}

func (s *Signer) Remove(session Session, productID int64) (Session, error) {
	items := make([]Item, 0, len(session.Items))
	for _, it := range session.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	return s.Update(session, items)
}
