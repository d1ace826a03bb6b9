package world

// Attach делает holder держателем a (инвентарь, наложенный эффект).
//
// Удерживаемый актор снимается с сетки, но остается в реестре мира
// держателя. Несвязанный актор, прикрепляемый к связанному держателю,
// регистрируется вместе со своим поддеревом. Циклы запрещены.
func Attach(holder, a Actor) {
	hb, ab := holder.body(), a.body()

	if ab.holder != nil {
		violate(ErrPrecondition, "actor %s is already held by %s", ab.id, ab.holder.ID())
	}
	for h := holder; h != nil; h = h.body().holder {
		if h == a {
			violate(ErrPrecondition, "actor %s cannot hold its own ancestor %s", hb.id, ab.id)
		}
	}
	if ab.world != nil && ab.world != hb.world {
		violate(ErrPrecondition, "actor %s is bound to another world than holder %s", ab.id, hb.id)
	}

	if ab.world != nil {
		ab.world.removeFromGrid(a)
	} else if hb.world != nil {
		hb.world.register(a)
	}

	ab.holder = holder
	hb.holds.Put(a)
}

// Detach разрывает связь с держателем. Если мир есть, актор
// кладется на клетку держателя и остается зарегистрированным.
func Detach(a Actor) {
	ab := a.body()
	if ab.holder == nil {
		violate(ErrPrecondition, "actor %s is not held", ab.id)
	}

	holder := ab.holder
	ab.pos = holder.Pos()
	holder.body().holds.Remove(a)
	ab.holder = nil

	if ab.world != nil {
		ab.world.addToGrid(a)
	}
}

// Subtree возвращает актора и всех, кого он держит (рекурсивно).
func Subtree(a Actor) []Actor {
	all := []Actor{a}
	a.body().holds.Each(func(held Actor) {
		all = append(all, Subtree(held)...)
	})
	return all
}
