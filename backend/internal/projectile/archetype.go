package projectile

// Kind закрытое перечисление архетипов снарядов. Параметры каждого
// архетипа фиксированы на этапе компиляции.
type Kind int

const (
	// Bullet быстрый легкий снаряд
	Bullet Kind = iota
	// Bomb медленный тяжелый снаряд
	Bomb

	kindCount
)

// Params фиксированные параметры архетипа
type Params struct {
	Radius float32
	Mass   float32
	Speed  float32
	Color  string
}

var kindParams = [kindCount]Params{
	Bullet: {Radius: 0.25, Mass: 0.6, Speed: 36, Color: "#ffcc00"},
	Bomb:   {Radius: 0.8, Mass: 6, Speed: 14, Color: "#cc3333"},
}

var kindNames = [kindCount]string{
	Bullet: "bullet",
	Bomb:   "bomb",
}

// Params возвращает параметры архетипа
func (k Kind) Params() Params {
	return kindParams[k]
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind переводит строку протокола в архетип
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "bullet":
		return Bullet, true
	case "bomb":
		return Bomb, true
	}
	return 0, false
}
