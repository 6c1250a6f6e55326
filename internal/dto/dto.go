package dto

import (
	"vetclinic-service/internal/domain"
	"vetclinic-service/internal/domain/appointment"
	"vetclinic-service/internal/domain/customer"
	"vetclinic-service/internal/domain/doctor"
)

type CustomerDTO struct {
	ID      int64  `json:"id"`
	PIN     int    `json:"pin"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type DoctorDTO struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// AppointmentDTO names the counterparty of whoever asked: the doctor when
// returned to a booking customer, the customer on a doctor's page.
type AppointmentDTO struct {
	ID            int64            `json:"id"`
	Note          string           `json:"note"`
	ScheduledDate domain.Date      `json:"scheduledDate"`
	ScheduledTime domain.TimeOfDay `json:"scheduledTime"`
	PersonName    string           `json:"personName"`
	PersonSurname string           `json:"personSurname"`
}

func FromCustomer(c customer.Customer) CustomerDTO {
	return CustomerDTO{ID: c.ID, PIN: c.PIN, Name: c.Name, Surname: c.Surname}
}

func FromDoctor(d doctor.Doctor) DoctorDTO {
	return DoctorDTO{ID: d.ID, Title: d.Title, Name: d.Name, Surname: d.Surname}
}

// AppointmentForCustomer maps a booked appointment for the customer who
// owns it; the person fields carry the doctor's name.
func AppointmentForCustomer(a appointment.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:            a.ID,
		Note:          a.Note,
		ScheduledDate: a.ScheduledDate,
		ScheduledTime: a.ScheduledTime,
		PersonName:    a.Doctor.Name,
		PersonSurname: a.Doctor.Surname,
	}
}

// AppointmentForDoctor maps an appointment for the doctor's listing; the
// person fields carry the visiting customer's name.
func AppointmentForDoctor(a appointment.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:            a.ID,
		Note:          a.Note,
		ScheduledDate: a.ScheduledDate,
		ScheduledTime: a.ScheduledTime,
		PersonName:    a.Customer.Name,
		PersonSurname: a.Customer.Surname,
	}
}
