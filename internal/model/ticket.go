package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// TicketType is a priced admission category such as "Adult" or
// "Child".  For booking purposes it is read-only reference data: the
// type only affects the price, never the seat class.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique category name.
//  Price     – price per ticket of this type.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type TicketType struct {
    ID        uint64          // ticket_types.id
    Name      string          // ticket_types.name
    Price     decimal.Decimal // ticket_types.price (DECIMAL)
    CreatedAt time.Time       // ticket_types.created_at
    UpdatedAt time.Time       // ticket_types.updated_at
}

// Ticket is the result of a successful booking.  A ticket's existence
// for a given (screening, seat) pair marks that seat as unavailable
// for that screening; the tickets table enforces this with a unique
// key on the pair.  Tickets are never mutated after creation.
//
// Fields:
//  ID           – primary key identifier.
//  ScreeningID  – screening the ticket admits to.
//  UserID       – user who bought the ticket.
//  SeatID       – seat consumed by this ticket.
//  TicketTypeID – admission category the ticket was sold under.
//  Price        – price paid, copied from the type at booking time.
//  PaymentRef   – reference returned by the payment provider.
//  CreatedAt    – when the booking transaction committed.
type Ticket struct {
    ID           uint64          // tickets.id
    ScreeningID  uint64          // tickets.screening_id
    UserID       uint64          // tickets.user_id
    SeatID       uint64          // tickets.seat_id
    TicketTypeID uint64          // tickets.ticket_type_id
    Price        decimal.Decimal // tickets.price
    PaymentRef   *string         // tickets.payment_ref (nullable)
    CreatedAt    time.Time       // tickets.created_at
}
