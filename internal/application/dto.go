package application

import (
	"time"

	bookingDomain "github.com/shareit/service-shareit/internal/domain/booking"
	itemDomain "github.com/shareit/service-shareit/internal/domain/item"
	requestDomain "github.com/shareit/service-shareit/internal/domain/request"
	userDomain "github.com/shareit/service-shareit/internal/domain/user"
)

// UserDTO is the API representation of a user.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ItemShortDTO identifies the booked item inside a booking.
type ItemShortDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingDTO is the API representation of a booking with its item and booker.
type BookingDTO struct {
	ID     int64        `json:"id"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Status string       `json:"status"`
	Item   ItemShortDTO `json:"item"`
	Booker UserDTO      `json:"booker"`
}

// BookingShortDTO is the last/next booking summary inside an item view.
type BookingShortDTO struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// CommentDTO is the API representation of a comment.
type CommentDTO struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemDTO is the API representation of an item.
type ItemDTO struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	RequestID   *int64           `json:"requestId,omitempty"`
	LastBooking *BookingShortDTO `json:"lastBooking,omitempty"`
	NextBooking *BookingShortDTO `json:"nextBooking,omitempty"`
	Comments    []CommentDTO     `json:"comments"`
}

// RequestItemDTO is an item offered in answer to a request.
type RequestItemDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   int64  `json:"requestId"`
}

// RequestDTO is the API representation of an item request.
type RequestDTO struct {
	ID          int64            `json:"id"`
	Description string           `json:"description"`
	Created     time.Time        `json:"created"`
	Items       []RequestItemDTO `json:"items"`
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}

func toBookingDTO(bk *bookingDomain.Booking, it *itemDomain.Item, booker *userDomain.User) BookingDTO {
	return BookingDTO{
		ID:     bk.ID(),
		Start:  bk.Start(),
		End:    bk.End(),
		Status: bk.Status().String(),
		Item:   ItemShortDTO{ID: it.ID(), Name: it.Name()},
		Booker: toUserDTO(booker),
	}
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.IsAvailable(),
		RequestID:   it.RequestID(),
		Comments:    []CommentDTO{},
	}
}

func toCommentDTO(c *itemDomain.Comment, authorName string) CommentDTO {
	return CommentDTO{ID: c.ID(), Text: c.Text(), AuthorName: authorName, Created: c.Created()}
}

func toRequestDTO(r *requestDomain.ItemRequest, items []*itemDomain.Item) RequestDTO {
	dto := RequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		Created:     r.Created(),
		Items:       make([]RequestItemDTO, 0, len(items)),
	}
	for _, it := range items {
		dto.Items = append(dto.Items, RequestItemDTO{
			ID:          it.ID(),
			Name:        it.Name(),
			Description: it.Description(),
			Available:   it.IsAvailable(),
			OwnerID:     it.OwnerID(),
			RequestID:   r.ID(),
		})
	}
	return dto
}
