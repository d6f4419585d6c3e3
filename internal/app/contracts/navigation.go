package contracts

type Navigator interface {
	NavigateTo(path string)
}

type ModalController interface {
	SetOpen(open bool)
}
